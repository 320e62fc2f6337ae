package wireframe

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/physdebug/pkg/math"
)

// CapsuleSegmentCount returns how many segments Capsule emits.
func CapsuleSegmentCount(segments int) int {
	segments, _ = ClampSegments(segments)
	return 4 + 2*8*(segments-1)
}

// Capsule outlines a capsule whose hemisphere centers are point1 and point2.
//
// The result starts with the 4 side lines (up, right, -up, -right of the
// axis basis), followed by the cap at point1 and then the cap at point2.
// Each cap draws the full ring perpendicular to the axis and the outward
// halves of the two rings containing the axis. Coincident endpoints use
// world up as the axis.
func Capsule(point1, point2 math.Vec3, radius float32, segments int) []Segment {
	radius = math32.Abs(radius)
	axis := point2.Sub(point1).Normalize()
	if axis.IsZero() {
		axis = math.Up
	}
	right, up := Basis(axis)

	out := make([]Segment, 0, CapsuleSegmentCount(segments))
	for _, k := range [4]math.Vec3{up, right, up.Neg(), right.Neg()} {
		off := k.Scale(radius)
		out = append(out, Segment{Start: point1.Add(off), End: point2.Add(off)})
	}

	steps := quarterArc(radius, segments)
	out = appendCap(out, point1, math.QuatLookRotation(axis.Neg(), up), steps)
	out = appendCap(out, point2, math.QuatLookRotation(axis, up), steps)
	return out
}

// appendCap adds one hemisphere whose local +Z faces away from the body.
func appendCap(out []Segment, center math.Vec3, r math.Quat, steps []arcStep) []Segment {
	seg := func(a, b math.Vec3) {
		out = append(out, Segment{Start: center.Add(r.Rotate(a)), End: center.Add(r.Rotate(b))})
	}
	for _, s := range steps {
		// XY ring
		seg(math.Vec3{X: s.x1, Y: s.y1}, math.Vec3{X: s.x2, Y: s.y2})
		seg(math.Vec3{X: -s.x1, Y: s.y1}, math.Vec3{X: -s.x2, Y: s.y2})
		seg(math.Vec3{X: -s.x1, Y: -s.y1}, math.Vec3{X: -s.x2, Y: -s.y2})
		seg(math.Vec3{X: s.x1, Y: -s.y1}, math.Vec3{X: s.x2, Y: -s.y2})
		// XZ, outward half
		seg(math.Vec3{X: s.x1, Z: s.y1}, math.Vec3{X: s.x2, Z: s.y2})
		seg(math.Vec3{X: -s.x1, Z: s.y1}, math.Vec3{X: -s.x2, Z: s.y2})
		// YZ, outward half
		seg(math.Vec3{Y: s.x1, Z: s.y1}, math.Vec3{Y: s.x2, Z: s.y2})
		seg(math.Vec3{Y: -s.x1, Z: s.y1}, math.Vec3{Y: -s.x2, Z: s.y2})
	}
	return out
}
