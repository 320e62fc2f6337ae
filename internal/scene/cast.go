package scene

import (
	"github.com/chewxy/math32"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/internal/picking"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

const (
	maxMarchSteps    = 256
	hitEpsilon       = 1e-4
	maxCapsuleProbes = 64
	maxBoxDepth      = 6
	boxCellSize      = 0.02
)

// probe is a sphere swept along the cast direction. A cast volume is
// approximated by the union of its probes.
type probe struct {
	start  math.Vec3
	radius float32
}

// shapeProbes covers a round cast shape with probe spheres.
func shapeProbes(s wireframe.Shape) []probe {
	if s.Kind == wireframe.ShapeCapsule {
		return capsuleProbes(s.Point1, s.Point2, s.Radius)
	}
	return []probe{{start: s.Center, radius: s.Radius}}
}

func capsuleProbes(p1, p2 math.Vec3, r float32) []probe {
	length := p1.Distance(p2)
	n := 2
	if r > 0 {
		n = int(math32.Ceil(length/(r/2))) + 1
	}
	n = math.Clamp(n, 2, maxCapsuleProbes)
	out := make([]probe, n)
	for i := range out {
		out[i] = probe{start: p1.Lerp(p2, float32(i)/float32(n-1)), radius: r}
	}
	return out
}

// castBox is an oriented box swept along the cast direction.
type castBox struct {
	center math.Vec3
	half   math.Vec3
	orient math.Quat
	depth  int
}

func newCastBox(center, half math.Vec3, orient math.Quat) castBox {
	depth := 1
	if r := half.Length(); r > boxCellSize {
		depth = int(math32.Ceil(math32.Log2(r / boxCellSize)))
	}
	return castBox{center: center, half: half, orient: orient.Normalize(), depth: math.Clamp(depth, 1, maxBoxDepth)}
}

// gap returns a lower bound on the distance between the box moved by
// offset and so, with the cell that produced it. Cells that may touch so
// are split into octants until depth runs out.
func (b castBox) gap(so solid, offset math.Vec3) (float32, math.Vec3) {
	return boxGap(so, b.center.Add(offset), b.half, b.orient, b.depth)
}

func boxGap(so solid, center, half math.Vec3, orient math.Quat, depth int) (float32, math.Vec3) {
	lb := so.dist(center) - half.Length()
	if lb > hitEpsilon || depth == 0 {
		return lb, center
	}
	h := half.Scale(0.5)
	best, at := float32(math32.MaxFloat32), center
	for i := 0; i < 8; i++ {
		off := h
		if i&1 != 0 {
			off.X = -off.X
		}
		if i&2 != 0 {
			off.Y = -off.Y
		}
		if i&4 != 0 {
			off.Z = -off.Z
		}
		g, cell := boxGap(so, center.Add(orient.Rotate(off)), h, orient, depth-1)
		if g <= hitEpsilon {
			return g, cell
		}
		if g < best {
			best, at = g, cell
		}
	}
	return best, at
}

// marchBox advances a box along dir until it touches so or limit is
// passed.
func marchBox(c *physics.Collider, so solid, box castBox, dir math.Vec3, limit float32) (physics.Hit, bool) {
	var t float32
	for step := 0; step < maxMarchSteps; step++ {
		g, cell := box.gap(so, dir.Scale(t))
		if g <= hitEpsilon {
			n := so.normal(cell)
			return physics.Hit{
				Point:    cell.Sub(n.Scale(so.dist(cell))),
				Normal:   n,
				Distance: t,
				Collider: c,
			}, true
		}
		t += g
		if t > limit {
			break
		}
	}
	return physics.Hit{}, false
}

// march advances probes along dir until one touches so or limit is passed.
// It returns the travelled distance and the index of the touching probe.
func march(so solid, probes []probe, dir math.Vec3, limit float32) (float32, int, bool) {
	var t float32
	for step := 0; step < maxMarchSteps; step++ {
		d, k := nearestProbe(so, probes, dir.Scale(t))
		if d <= hitEpsilon {
			return t, k, true
		}
		t += d
		if t > limit {
			return 0, 0, false
		}
	}
	return 0, 0, false
}

func nearestProbe(so solid, probes []probe, offset math.Vec3) (float32, int) {
	best := float32(math32.MaxFloat32)
	idx := 0
	for i, p := range probes {
		if d := so.dist(p.start.Add(offset)) - p.radius; d < best {
			best, idx = d, i
		}
	}
	return best, idx
}

// marchHit builds the hit for a probe cast against one collider.
func marchHit(c *physics.Collider, so solid, probes []probe, dir math.Vec3, limit float32) (physics.Hit, bool) {
	t, k, ok := march(so, probes, dir, limit)
	if !ok {
		return physics.Hit{}, false
	}
	at := probes[k].start.Add(dir.Scale(t))
	n := so.normal(at)
	return physics.Hit{
		Point:    at.Sub(n.Scale(so.dist(at))),
		Normal:   n,
		Distance: t,
		Collider: c,
	}, true
}

func nearest(hits []physics.Hit) (physics.Hit, bool) {
	if len(hits) == 0 {
		return physics.Hit{}, false
	}
	return lo.MinBy(hits, func(a, b physics.Hit) bool { return a.Distance < b.Distance }), true
}

// rayHits casts a ray. Colliders containing the origin are not reported.
func (w *World) rayHits(ray physics.Ray, q physics.Query) []physics.Hit {
	dir := ray.Direction.Normalize()
	if dir.IsZero() {
		return nil
	}
	limit := castLimit(q)
	pr := picking.Ray{Origin: ray.Origin, Direction: dir}
	box := picking.NewAABB(ray.Origin, pr.At(limit)).Expand(touchEpsilon)
	probes := []probe{{start: ray.Origin}}

	var hits []physics.Hit
	for _, e := range w.candidates(q, box) {
		bb := e.bounds().Expand(touchEpsilon)
		if t, ok := pr.IntersectAABB(bb); !ok || (t > limit && !bb.Contains(ray.Origin)) {
			continue
		}
		so := e.solid()
		if so.dist(ray.Origin) <= 0 {
			continue
		}
		if h, ok := marchHit(e.collider, so, probes, dir, limit); ok {
			hits = append(hits, h)
		}
	}
	return hits
}

// sweepHits casts a shape along direction. Colliders the shape already
// overlaps are reported with physics.OverlapHit. self and the colliders it
// ignores are skipped.
func (w *World) sweepHits(s wireframe.Shape, direction math.Vec3, q physics.Query, self *physics.Collider) []physics.Hit {
	dir := direction.Normalize()
	if dir.IsZero() {
		return nil
	}
	query, err := newSolid(s)
	if err != nil {
		w.log.Debug("invalid cast shape", zap.Error(err))
		return nil
	}
	limit := castLimit(q)
	min, max := s.Bounds()
	travel := dir.Scale(limit)
	box := picking.NewAABB(min, max).
		Union(picking.NewAABB(min.Add(travel), max.Add(travel))).
		Expand(touchEpsilon)
	cast := w.sweeper(s, dir, limit)

	var hits []physics.Hit
	for _, e := range w.candidates(q, box) {
		if self != nil && (e.collider == self || w.ignores(self, e.collider)) {
			continue
		}
		so := e.solid()
		if overlaps(query, so) {
			hits = append(hits, physics.OverlapHit(e.collider, dir))
			continue
		}
		if h, ok := cast(e.collider, so); ok {
			hits = append(hits, h)
		}
	}
	return hits
}

// sweeper returns the marcher for a cast shape. Boxes and mesh bounds march
// the box itself; spheres and capsules march their probes.
func (w *World) sweeper(s wireframe.Shape, dir math.Vec3, limit float32) func(*physics.Collider, solid) (physics.Hit, bool) {
	switch s.Kind {
	case wireframe.ShapeSphere, wireframe.ShapeCapsule:
		probes := shapeProbes(s)
		return func(c *physics.Collider, so solid) (physics.Hit, bool) {
			return marchHit(c, so, probes, dir, limit)
		}
	case wireframe.ShapeBox:
		box := newCastBox(s.Center, s.HalfExtents, s.Orientation)
		return func(c *physics.Collider, so solid) (physics.Hit, bool) {
			return marchBox(c, so, box, dir, limit)
		}
	default:
		min, max := s.Bounds()
		box := newCastBox(min.Add(max).Scale(0.5), max.Sub(min).Scale(0.5), math.QuatIdentity())
		return func(c *physics.Collider, so solid) (physics.Hit, bool) {
			return marchBox(c, so, box, dir, limit)
		}
	}
}

// Raycast returns the nearest hit along ray.
func (w *World) Raycast(ray physics.Ray, q physics.Query) (physics.Hit, bool) {
	return nearest(w.rayHits(ray, q))
}

// RaycastAll returns every hit along ray.
func (w *World) RaycastAll(ray physics.Ray, q physics.Query) []physics.Hit {
	return w.rayHits(ray, q)
}

// SphereCast returns the nearest hit of a swept sphere.
func (w *World) SphereCast(origin math.Vec3, radius float32, direction math.Vec3, q physics.Query) (physics.Hit, bool) {
	return nearest(w.sweepHits(wireframe.SphereShape(origin, radius), direction, q, nil))
}

// SphereCastAll returns every hit of a swept sphere.
func (w *World) SphereCastAll(origin math.Vec3, radius float32, direction math.Vec3, q physics.Query) []physics.Hit {
	return w.sweepHits(wireframe.SphereShape(origin, radius), direction, q, nil)
}

// BoxCast returns the nearest hit of a swept box.
func (w *World) BoxCast(center, halfExtents, direction math.Vec3, orient math.Quat, q physics.Query) (physics.Hit, bool) {
	return nearest(w.sweepHits(wireframe.BoxShape(center, halfExtents, orient), direction, q, nil))
}

// BoxCastAll returns every hit of a swept box.
func (w *World) BoxCastAll(center, halfExtents, direction math.Vec3, orient math.Quat, q physics.Query) []physics.Hit {
	return w.sweepHits(wireframe.BoxShape(center, halfExtents, orient), direction, q, nil)
}

// CapsuleCast returns the nearest hit of a swept capsule.
func (w *World) CapsuleCast(point1, point2 math.Vec3, radius float32, direction math.Vec3, q physics.Query) (physics.Hit, bool) {
	return nearest(w.sweepHits(wireframe.CapsuleShape(point1, point2, radius), direction, q, nil))
}

// CapsuleCastAll returns every hit of a swept capsule.
func (w *World) CapsuleCastAll(point1, point2 math.Vec3, radius float32, direction math.Vec3, q physics.Query) []physics.Hit {
	return w.sweepHits(wireframe.CapsuleShape(point1, point2, radius), direction, q, nil)
}
