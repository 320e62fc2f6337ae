package wireframe

import "github.com/Faultbox/physdebug/pkg/math"

// Basis returns a normalized (right, up) pair perpendicular to direction.
//
// right = direction × worldUp and up = direction × right. When direction is
// parallel to world up the pair is derived from world right instead, so the
// result never collapses to zero for a non-zero direction.
func Basis(direction math.Vec3) (right, up math.Vec3) {
	if !direction.Parallel(math.Up) {
		right = direction.Cross(math.Up).Normalize()
		up = direction.Cross(right).Normalize()
		return right, up
	}
	up = direction.Cross(math.Right).Normalize()
	right = direction.Cross(up).Normalize()
	return right, up
}

// orientation returns the rotation that aligns local Z with forward and
// local Y with the up vector from Basis. A zero forward uses world forward.
func orientation(forward math.Vec3) math.Quat {
	if forward.IsZero() {
		forward = math.Forward
	}
	_, up := Basis(forward)
	return math.QuatLookRotation(forward.Normalize(), up)
}
