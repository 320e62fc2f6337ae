package wireframe

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/physdebug/pkg/math"
)

// arcStep is one chord of a quarter circle, from (x1, y1) to (x2, y2).
type arcStep struct {
	x1, y1, x2, y2 float32
}

// quarterArc splits a quarter circle of the given radius into segments-1
// chords starting at (0, radius).
func quarterArc(radius float32, segments int) []arcStep {
	segments, _ = ClampSegments(segments)
	steps := make([]arcStep, 0, segments-1)
	x1, y1 := float32(0), radius
	for i := 1; i < segments; i++ {
		x2 := radius * math32.Sin(float32(i)/float32(segments-1)*(math32.Pi/2))
		y2 := math32.Sqrt(radius*radius - x2*x2)
		steps = append(steps, arcStep{x1, y1, x2, y2})
		x1, y1 = x2, y2
	}
	return steps
}

// SphereSegmentCount returns how many segments Sphere emits.
func SphereSegmentCount(segments int) int {
	segments, _ = ClampSegments(segments)
	return 12 * (segments - 1)
}

// Sphere outlines a sphere with three orthogonal great circles.
//
// The circles lie in the local XY, XZ and YZ planes of the rotation whose Z
// axis points along forward. Each quarter circle is split into segments-1
// chords, so the result holds 12*(segments-1) segments ordered per chord as
// XY (+x+y, -x+y, -x-y, +x-y), then XZ, then YZ.
func Sphere(center math.Vec3, radius float32, forward math.Vec3, segments int) []Segment {
	radius = math32.Abs(radius)
	r := orientation(forward)
	steps := quarterArc(radius, segments)

	out := make([]Segment, 0, 12*len(steps))
	seg := func(a, b math.Vec3) {
		out = append(out, Segment{Start: center.Add(r.Rotate(a)), End: center.Add(r.Rotate(b))})
	}
	for _, s := range steps {
		// XY
		seg(math.Vec3{X: s.x1, Y: s.y1}, math.Vec3{X: s.x2, Y: s.y2})
		seg(math.Vec3{X: -s.x1, Y: s.y1}, math.Vec3{X: -s.x2, Y: s.y2})
		seg(math.Vec3{X: -s.x1, Y: -s.y1}, math.Vec3{X: -s.x2, Y: -s.y2})
		seg(math.Vec3{X: s.x1, Y: -s.y1}, math.Vec3{X: s.x2, Y: -s.y2})
		// XZ
		seg(math.Vec3{X: s.x1, Z: s.y1}, math.Vec3{X: s.x2, Z: s.y2})
		seg(math.Vec3{X: -s.x1, Z: s.y1}, math.Vec3{X: -s.x2, Z: s.y2})
		seg(math.Vec3{X: -s.x1, Z: -s.y1}, math.Vec3{X: -s.x2, Z: -s.y2})
		seg(math.Vec3{X: s.x1, Z: -s.y1}, math.Vec3{X: s.x2, Z: -s.y2})
		// YZ
		seg(math.Vec3{Y: s.x1, Z: s.y1}, math.Vec3{Y: s.x2, Z: s.y2})
		seg(math.Vec3{Y: -s.x1, Z: s.y1}, math.Vec3{Y: -s.x2, Z: s.y2})
		seg(math.Vec3{Y: -s.x1, Z: -s.y1}, math.Vec3{Y: -s.x2, Z: -s.y2})
		seg(math.Vec3{Y: s.x1, Z: -s.y1}, math.Vec3{Y: s.x2, Z: -s.y2})
	}
	return out
}
