package scene

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/chewxy/math32"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

// ErrInvalidShape is returned for shapes that cannot be turned into a
// signed distance field.
var ErrInvalidShape = errors.New("scene: invalid shape")

const (
	gradientStep   = 1e-3
	projectRounds  = 4
	pocsIterations = 32
	touchEpsilon   = 1e-3
)

// solid is a signed distance field placed in the world. local is centered
// on the origin and evaluated at rot⁻¹(p - center).
type solid struct {
	local  sdf.SDF3
	center math.Vec3
	rot    math.Quat
}

// localSDF builds the origin-centered field of a shape. Capsules run along
// local Z.
func localSDF(s wireframe.Shape) (sdf.SDF3, error) {
	var (
		f   sdf.SDF3
		err error
	)
	switch s.Kind {
	case wireframe.ShapeSphere:
		if s.Radius == 0 {
			return pointSDF{}, nil
		}
		f, err = sdf.Sphere3D(float64(s.Radius))
	case wireframe.ShapeBox:
		h := s.HalfExtents
		if h.X < 0 || h.Y < 0 || h.Z < 0 {
			return nil, fmt.Errorf("box half extents %v: %w", h, ErrInvalidShape)
		}
		f, err = sdf.Box3D(v3.Vec{X: 2 * float64(h.X), Y: 2 * float64(h.Y), Z: 2 * float64(h.Z)}, 0)
	case wireframe.ShapeCapsule:
		length := s.Point1.Distance(s.Point2)
		r := float64(s.Radius)
		switch {
		case s.Radius == 0:
			return nil, fmt.Errorf("capsule radius 0: %w", ErrInvalidShape)
		case length < 1e-6:
			f, err = sdf.Sphere3D(r)
		default:
			f, err = sdf.Cylinder3D(float64(length)+2*r, r, r)
		}
	case wireframe.ShapeMesh:
		size := s.Max.Sub(s.Min)
		f, err = sdf.Box3D(v3.Vec{X: float64(size.X), Y: float64(size.Y), Z: float64(size.Z)}, 0)
	default:
		return nil, fmt.Errorf("%v: %w", s.Kind, ErrInvalidShape)
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w: %v", s.Kind, ErrInvalidShape, err)
	}
	return f, nil
}

// frameOf returns the placement of a shape's local field.
func frameOf(s wireframe.Shape) (math.Vec3, math.Quat) {
	if s.Kind == wireframe.ShapeCapsule {
		center := s.Point1.Add(s.Point2).Scale(0.5)
		axis := s.Point2.Sub(s.Point1)
		if axis.IsZero() {
			return center, math.QuatIdentity()
		}
		return center, math.QuatFromToRotation(math.Forward, axis)
	}
	return s.Center, s.Orientation.Normalize()
}

// newSolid builds a placed field for a query or collider shape.
func newSolid(s wireframe.Shape) (solid, error) {
	local, err := localSDF(s)
	if err != nil {
		return solid{}, err
	}
	c, r := frameOf(s)
	return solid{local: local, center: c, rot: r}, nil
}

// placed returns the same field placed by s.
func (so solid) placed(s wireframe.Shape) solid {
	so.center, so.rot = frameOf(s)
	return so
}

// moved returns the solid translated by delta.
func (so solid) moved(delta math.Vec3) solid {
	so.center = so.center.Add(delta)
	return so
}

func (so solid) dist(p math.Vec3) float32 {
	l := so.rot.Conjugate().Rotate(p.Sub(so.center))
	return float32(so.local.Evaluate(v3.Vec{X: float64(l.X), Y: float64(l.Y), Z: float64(l.Z)}))
}

// normal is the normalized central-difference gradient at p.
func (so solid) normal(p math.Vec3) math.Vec3 {
	const h = gradientStep
	g := math.Vec3{
		X: so.dist(p.Add(math.Vec3{X: h})) - so.dist(p.Sub(math.Vec3{X: h})),
		Y: so.dist(p.Add(math.Vec3{Y: h})) - so.dist(p.Sub(math.Vec3{Y: h})),
		Z: so.dist(p.Add(math.Vec3{Z: h})) - so.dist(p.Sub(math.Vec3{Z: h})),
	}.Normalize()
	if g.IsZero() {
		return math.Up
	}
	return g
}

// project moves p onto the solid if it lies outside.
func (so solid) project(p math.Vec3) math.Vec3 {
	for i := 0; i < projectRounds; i++ {
		d := so.dist(p)
		if d <= 0 {
			return p
		}
		p = p.Sub(so.normal(p).Scale(d))
	}
	return p
}

// overlaps reports whether two convex solids intersect, by alternating
// projections starting from b's center.
func overlaps(a, b solid) bool {
	p := b.center
	for i := 0; i < pocsIterations; i++ {
		p = b.project(a.project(p))
		if a.dist(p) <= touchEpsilon && b.dist(p) <= touchEpsilon {
			return true
		}
	}
	return false
}

// transformed places a local field inside a compound body.
type transformed struct {
	local  sdf.SDF3
	offset math.Vec3
	rot    math.Quat
	bb     sdf.Box3
}

func newTransformed(local sdf.SDF3, offset math.Vec3, rot math.Quat) transformed {
	t := transformed{local: local, offset: offset, rot: rot}
	lb := local.BoundingBox()
	lo := math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32}
	hi := lo.Neg()
	for i := 0; i < 8; i++ {
		c := math.Vec3{X: float32(lb.Min.X), Y: float32(lb.Min.Y), Z: float32(lb.Min.Z)}
		if i&1 != 0 {
			c.X = float32(lb.Max.X)
		}
		if i&2 != 0 {
			c.Y = float32(lb.Max.Y)
		}
		if i&4 != 0 {
			c.Z = float32(lb.Max.Z)
		}
		w := offset.Add(rot.Rotate(c))
		lo, hi = lo.Min(w), hi.Max(w)
	}
	t.bb = sdf.Box3{Min: toV3(lo), Max: toV3(hi)}
	return t
}

// Evaluate implements sdf.SDF3.
func (t transformed) Evaluate(p v3.Vec) float64 {
	l := t.rot.Conjugate().Rotate(fromV3(p).Sub(t.offset))
	return t.local.Evaluate(toV3(l))
}

// BoundingBox implements sdf.SDF3.
func (t transformed) BoundingBox() sdf.Box3 {
	return t.bb
}

// pointSDF is the field of a single point at the origin.
type pointSDF struct{}

func (pointSDF) Evaluate(p v3.Vec) float64 { return gomath.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z) }

func (pointSDF) BoundingBox() sdf.Box3 { return sdf.Box3{} }

func toV3(v math.Vec3) v3.Vec {
	return v3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func fromV3(v v3.Vec) math.Vec3 {
	return math.Vec3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
