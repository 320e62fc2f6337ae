package math

import "github.com/chewxy/math32"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := math32.Sin(halfAngle)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(halfAngle),
	}
}

// QuatFromToRotation returns the shortest rotation taking from onto to.
func QuatFromToRotation(from, to Vec3) Quat {
	f := from.Normalize()
	t := to.Normalize()
	if f.IsZero() || t.IsZero() {
		return QuatIdentity()
	}
	d := Clamp(f.Dot(t), -1, 1)
	if d >= 1-1e-6 {
		return QuatIdentity()
	}
	if d <= -1+1e-6 {
		return QuatFromAxisAngle(AnyPerpendicular(f), math32.Pi)
	}
	return QuatFromAxisAngle(f.Cross(t).Normalize(), math32.Acos(d))
}

// QuatLookRotation returns the rotation whose local Z axis points along
// forward and whose local Y axis is as close to up as possible.
// A zero forward yields identity; forward parallel to up falls back to the
// shortest rotation from world forward.
func QuatLookRotation(forward, up Vec3) Quat {
	f := forward.Normalize()
	if f.IsZero() {
		return QuatIdentity()
	}
	r := up.Cross(f)
	if r.LengthSquared() < 1e-12 {
		return QuatFromToRotation(Forward, f)
	}
	r = r.Normalize()
	u := f.Cross(r)

	// Rotation matrix with columns r, u, f.
	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		q = Quat{X: (m21 - m12) * s, Y: (m02 - m20) * s, Z: (m10 - m01) * s, W: 0.25 / s}
	case m00 > m11 && m00 > m22:
		s := 2 * math32.Sqrt(1+m00-m11-m22)
		q = Quat{X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s, W: (m21 - m12) / s}
	case m11 > m22:
		s := 2 * math32.Sqrt(1+m11-m00-m22)
		q = Quat{X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s, W: (m02 - m20) / s}
	default:
		s := 2 * math32.Sqrt(1+m22-m00-m11)
		q = Quat{X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s, W: (m10 - m01) / s}
	}
	return q.Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}
