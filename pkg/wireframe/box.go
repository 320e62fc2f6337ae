package wireframe

import "github.com/Faultbox/physdebug/pkg/math"

// BoxEdgeCount is the number of segments Box emits.
const BoxEdgeCount = 12

// BoxCorners returns the 8 corners of an oriented box. Corner i takes +x
// when bit 0 is set, +y for bit 1 and +z for bit 2.
func BoxCorners(center, halfExtents math.Vec3, orient math.Quat) [8]math.Vec3 {
	var corners [8]math.Vec3
	for i := range corners {
		local := halfExtents
		if i&1 == 0 {
			local.X = -local.X
		}
		if i&2 == 0 {
			local.Y = -local.Y
		}
		if i&4 == 0 {
			local.Z = -local.Z
		}
		corners[i] = center.Add(orient.Rotate(local))
	}
	return corners
}

// Box outlines an oriented box with its 12 edges: the four x edges, then
// the four y edges, then the four z edges.
func Box(center, halfExtents math.Vec3, orient math.Quat) []Segment {
	return boxEdges(BoxCorners(center, halfExtents, orient))
}

func boxEdges(c [8]math.Vec3) []Segment {
	out := make([]Segment, 0, BoxEdgeCount)
	for bit := 0; bit < 3; bit++ {
		mask := 1 << bit
		for i := 0; i < 8; i++ {
			if i&mask == 0 {
				out = append(out, Segment{Start: c[i], End: c[i|mask]})
			}
		}
	}
	return out
}

// Bounds outlines the axis-aligned box between min and max, grown by
// padding on every side. Swapped corners are reordered.
func Bounds(min, max math.Vec3, padding float32) []Segment {
	lo := min.Min(max)
	hi := min.Max(max)
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo = lo.Sub(pad)
	hi = hi.Add(pad)
	return Box(lo.Add(hi).Scale(0.5), hi.Sub(lo).Scale(0.5), math.QuatIdentity())
}
