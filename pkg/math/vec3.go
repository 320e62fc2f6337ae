// Package math provides math types and functions for 3D debug geometry.
package math

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Epsilon is the squared-length threshold below which a vector is treated as zero.
const Epsilon = 1e-15

// Rad2Deg converts radians to degrees.
const Rad2Deg = 180 / math32.Pi

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// World axes. Y is up, Z is forward.
var (
	Zero    = Vec3{0, 0, 0}
	One     = Vec3{1, 1, 1}
	Up      = Vec3{0, 1, 0}
	Down    = Vec3{0, -1, 0}
	Right   = Vec3{1, 0, 0}
	Left    = Vec3{-1, 0, 0}
	Forward = Vec3{0, 0, 1}
	Back    = Vec3{0, 0, -1}
)

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / scalar.
func (v Vec3) Div(d float32) Vec3 {
	return Vec3{v.X / d, v.Y / d, v.Z / d}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude.
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector, or the zero vector for zero-length input.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// ApproxEqual reports whether v and other differ by at most tol per component.
func (v Vec3) ApproxEqual(other Vec3, tol float32) bool {
	return math32.Abs(v.X-other.X) <= tol &&
		math32.Abs(v.Y-other.Y) <= tol &&
		math32.Abs(v.Z-other.Z) <= tol
}

// HasNaN reports whether any component is NaN.
func (v Vec3) HasNaN() bool {
	return math32.IsNaN(v.X) || math32.IsNaN(v.Y) || math32.IsNaN(v.Z)
}

// Parallel reports whether v and other point along the same line.
func (v Vec3) Parallel(other Vec3) bool {
	return v.Cross(other).LengthSquared() < 1e-12
}

// Lerp interpolates towards other, with t clamped to [0, 1].
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.LerpUnclamped(other, Clamp(t, 0, 1))
}

// LerpUnclamped interpolates towards other without clamping t.
func (v Vec3) LerpUnclamped(other Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (other.X-v.X)*t,
		v.Y + (other.Y-v.Y)*t,
		v.Z + (other.Z-v.Z)*t,
	}
}

// Min returns the component-wise minimum.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math32.Min(v.X, other.X), math32.Min(v.Y, other.Y), math32.Min(v.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math32.Max(v.X, other.X), math32.Max(v.Y, other.Y), math32.Max(v.Z, other.Z)}
}

// Project projects v onto normal. A zero normal yields the zero vector.
func (v Vec3) Project(normal Vec3) Vec3 {
	sqr := normal.Dot(normal)
	if sqr < Epsilon {
		return Vec3{}
	}
	return normal.Scale(v.Dot(normal) / sqr)
}

// ProjectOnPlane projects v onto the plane with the given normal.
func (v Vec3) ProjectOnPlane(planeNormal Vec3) Vec3 {
	return v.Sub(v.Project(planeNormal))
}

// Reflect reflects v off the plane defined by normal.
func (v Vec3) Reflect(normal Vec3) Vec3 {
	return normal.Scale(-2 * normal.Dot(v)).Add(v)
}

// Angle returns the unsigned angle in degrees between v and other.
func (v Vec3) Angle(other Vec3) float32 {
	denom := math32.Sqrt(v.LengthSquared() * other.LengthSquared())
	if denom < 1e-15 {
		return 0
	}
	dot := Clamp(v.Dot(other)/denom, -1, 1)
	return math32.Acos(dot) * Rad2Deg
}

// ClampMagnitude returns v with its length limited to maxLength.
func (v Vec3) ClampMagnitude(maxLength float32) Vec3 {
	if v.LengthSquared() > maxLength*maxLength {
		return v.Normalize().Scale(maxLength)
	}
	return v
}

// MoveTowards moves v towards target by at most maxDelta.
func (v Vec3) MoveTowards(target Vec3, maxDelta float32) Vec3 {
	to := target.Sub(v)
	dist := to.Length()
	if dist == 0 || (maxDelta >= 0 && dist <= maxDelta) {
		return target
	}
	return v.Add(to.Scale(maxDelta / dist))
}

// Slerp spherically interpolates between v and other, treating them as
// directions and interpolating their lengths linearly. t is clamped to [0, 1].
func (v Vec3) Slerp(other Vec3, t float32) Vec3 {
	t = Clamp(t, 0, 1)
	magA := v.Length()
	magB := other.Length()
	if magA == 0 || magB == 0 {
		return v.LerpUnclamped(other, t)
	}
	dirA := v.Scale(1 / magA)
	dirB := other.Scale(1 / magB)
	dot := Clamp(dirA.Dot(dirB), -1, 1)
	theta := math32.Acos(dot) * t

	relative := dirB.Sub(dirA.Scale(dot))
	if relative.LengthSquared() < 1e-12 {
		if dot > 0 {
			return v.LerpUnclamped(other, t)
		}
		relative = AnyPerpendicular(dirA)
	}
	relative = relative.Normalize()

	dir := dirA.Scale(math32.Cos(theta)).Add(relative.Scale(math32.Sin(theta)))
	return dir.Scale(magA + (magB-magA)*t)
}

// SmoothDamp gradually moves v towards target. velocity is updated in place.
func (v Vec3) SmoothDamp(target Vec3, velocity *Vec3, smoothTime, maxSpeed, deltaTime float32) Vec3 {
	smoothTime = math32.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * deltaTime
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := v.Sub(target)
	originalTo := target

	change = change.ClampMagnitude(maxSpeed * smoothTime)
	target = v.Sub(change)

	temp := velocity.Add(change.Scale(omega)).Scale(deltaTime)
	*velocity = velocity.Sub(temp.Scale(omega)).Scale(exp)
	output := target.Add(change.Add(temp).Scale(exp))

	// Do not overshoot.
	if originalTo.Sub(v).Dot(output.Sub(originalTo)) > 0 {
		output = originalTo
		if deltaTime > 0 {
			*velocity = output.Sub(originalTo).Scale(1 / deltaTime)
		}
	}
	return output
}

// AnyPerpendicular returns a unit vector perpendicular to v.
func AnyPerpendicular(v Vec3) Vec3 {
	p := v.Cross(Up)
	if p.LengthSquared() < 1e-12 {
		p = v.Cross(Right)
	}
	return p.Normalize()
}
