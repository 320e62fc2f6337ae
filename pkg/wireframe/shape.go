package wireframe

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/physdebug/pkg/math"
)

// ErrUnsupportedShape is returned when a shape has no exact wireframe.
var ErrUnsupportedShape = errors.New("wireframe: unsupported shape")

// ShapeKind identifies the variant held by a Shape.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapeCapsule
	ShapeMesh
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapeCapsule:
		return "capsule"
	case ShapeMesh:
		return "mesh"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is a world-space collider outline. Only the fields of its Kind are
// meaningful:
//
//	ShapeSphere  Center, Radius
//	ShapeBox     Center, HalfExtents, Orientation
//	ShapeCapsule Point1, Point2, Radius
//	ShapeMesh    Min, Max (bounds only)
type Shape struct {
	Kind        ShapeKind
	Center      math.Vec3
	Radius      float32
	HalfExtents math.Vec3
	Orientation math.Quat
	Point1      math.Vec3
	Point2      math.Vec3
	Min         math.Vec3
	Max         math.Vec3
}

// SphereShape describes a sphere.
func SphereShape(center math.Vec3, radius float32) Shape {
	return Shape{Kind: ShapeSphere, Center: center, Radius: math32.Abs(radius), Orientation: math.QuatIdentity()}
}

// BoxShape describes an oriented box.
func BoxShape(center, halfExtents math.Vec3, orient math.Quat) Shape {
	return Shape{Kind: ShapeBox, Center: center, HalfExtents: halfExtents, Orientation: orient}
}

// CapsuleShape describes a capsule by its hemisphere centers.
func CapsuleShape(point1, point2 math.Vec3, radius float32) Shape {
	return Shape{
		Kind:        ShapeCapsule,
		Center:      point1.Add(point2).Scale(0.5),
		Point1:      point1,
		Point2:      point2,
		Radius:      math32.Abs(radius),
		Orientation: math.QuatIdentity(),
	}
}

// MeshShape describes a triangle mesh by its axis-aligned bounds.
func MeshShape(min, max math.Vec3) Shape {
	lo, hi := min.Min(max), min.Max(max)
	return Shape{Kind: ShapeMesh, Center: lo.Add(hi).Scale(0.5), Min: lo, Max: hi, Orientation: math.QuatIdentity()}
}

// Bounds returns the world-space axis-aligned bounds of the shape.
func (s Shape) Bounds() (min, max math.Vec3) {
	switch s.Kind {
	case ShapeSphere:
		r := math.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
		return s.Center.Sub(r), s.Center.Add(r)
	case ShapeBox:
		c := BoxCorners(s.Center, s.HalfExtents, s.Orientation)
		min, max = c[0], c[0]
		for _, p := range c[1:] {
			min, max = min.Min(p), max.Max(p)
		}
		return min, max
	case ShapeCapsule:
		r := math.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
		lo := s.Point1.Min(s.Point2)
		hi := s.Point1.Max(s.Point2)
		return lo.Sub(r), hi.Add(r)
	default:
		return s.Min, s.Max
	}
}

// Moved returns the shape translated by delta.
func (s Shape) Moved(delta math.Vec3) Shape {
	s.Center = s.Center.Add(delta)
	s.Point1 = s.Point1.Add(delta)
	s.Point2 = s.Point2.Add(delta)
	s.Min = s.Min.Add(delta)
	s.Max = s.Max.Add(delta)
	return s
}

// ForShape outlines any Shape. forward orients sphere rings. Mesh shapes
// return ErrUnsupportedShape unless lenient is set, in which case their
// bounds box is drawn.
func ForShape(s Shape, forward math.Vec3, segments int, lenient bool) ([]Segment, error) {
	switch s.Kind {
	case ShapeSphere:
		return Sphere(s.Center, s.Radius, forward, segments), nil
	case ShapeBox:
		return Box(s.Center, s.HalfExtents, s.Orientation), nil
	case ShapeCapsule:
		return Capsule(s.Point1, s.Point2, s.Radius, segments), nil
	case ShapeMesh:
		if !lenient {
			return nil, fmt.Errorf("mesh collider: %w", ErrUnsupportedShape)
		}
		return Bounds(s.Min, s.Max, 0), nil
	default:
		return nil, fmt.Errorf("%v: %w", s.Kind, ErrUnsupportedShape)
	}
}
