package wireframe

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/physdebug/pkg/math"
)

// SphereSweep outlines a sphere cast: the sphere at end, the sphere at
// origin, then 4 rails joining them on the up, right, -up and -right sides
// of direction.
func SphereSweep(origin, end math.Vec3, radius float32, direction math.Vec3, segments int) []Segment {
	radius = math32.Abs(radius)
	out := Sphere(end, radius, direction, segments)
	out = append(out, Sphere(origin, radius, direction, segments)...)

	right, up := Basis(direction)
	up = up.Scale(radius)
	right = right.Scale(radius)
	return append(out,
		Segment{Start: origin.Add(up), End: end.Add(up)},
		Segment{Start: origin.Add(right), End: end.Add(right)},
		Segment{Start: origin.Sub(up), End: end.Sub(up)},
		Segment{Start: origin.Sub(right), End: end.Sub(right)},
	)
}

// BoxSweep outlines a box cast: the box at center, the box moved by
// direction*distance, and 8 rails joining matching corners.
func BoxSweep(center, halfExtents math.Vec3, orient math.Quat, direction math.Vec3, distance float32) []Segment {
	offset := direction.Normalize().Scale(distance)
	from := BoxCorners(center, halfExtents, orient)
	to := BoxCorners(center.Add(offset), halfExtents, orient)

	out := make([]Segment, 0, 2*BoxEdgeCount+8)
	out = append(out, boxEdges(from)...)
	out = append(out, boxEdges(to)...)
	for i := range from {
		out = append(out, Segment{Start: from[i], End: to[i]})
	}
	return out
}

// CapsuleSweep outlines a capsule cast from (point1, point2) to
// (point1End, point2End): both capsules and 4 rails along the silhouette
// of the swept volume.
func CapsuleSweep(point1, point2, point1End, point2End math.Vec3, radius float32, segments int) []Segment {
	radius = math32.Abs(radius)
	out := Capsule(point1, point2, radius, segments)
	out = append(out, Capsule(point1End, point2End, radius, segments)...)

	motion := point1End.Sub(point1)
	side := point2.Sub(point1).Cross(motion).Normalize()
	if side.IsZero() {
		_, side = Basis(motion)
	}
	side = side.Scale(radius)
	return append(out,
		Segment{Start: point1.Add(side), End: point1End.Add(side)},
		Segment{Start: point1.Sub(side), End: point1End.Sub(side)},
		Segment{Start: point2.Add(side), End: point2End.Add(side)},
		Segment{Start: point2.Sub(side), End: point2End.Sub(side)},
	)
}

// ShapeSweep outlines any Shape moved distance along direction. Mesh
// shapes sweep their bounds box.
func ShapeSweep(s Shape, direction math.Vec3, distance float32, segments int) []Segment {
	offset := direction.Normalize().Scale(distance)
	switch s.Kind {
	case ShapeSphere:
		return SphereSweep(s.Center, s.Center.Add(offset), s.Radius, direction, segments)
	case ShapeBox:
		return BoxSweep(s.Center, s.HalfExtents, s.Orientation, direction, distance)
	case ShapeCapsule:
		return CapsuleSweep(s.Point1, s.Point2, s.Point1.Add(offset), s.Point2.Add(offset), s.Radius, segments)
	default:
		min, max := s.Bounds()
		return BoxSweep(min.Add(max).Scale(0.5), max.Sub(min).Scale(0.5), math.QuatIdentity(), direction, distance)
	}
}
