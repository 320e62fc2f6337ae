package scene

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/internal/picking"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

const separationRounds = 16

// overlapping returns the colliders passing q that intersect s. With first
// set it stops at the first one.
func (w *World) overlapping(s wireframe.Shape, q physics.Query, first bool) []*physics.Collider {
	query, err := newSolid(s)
	if err != nil {
		w.log.Debug("invalid overlap shape", zap.Error(err))
		return nil
	}
	min, max := s.Bounds()
	box := picking.NewAABB(min, max).Expand(touchEpsilon)

	var out []*physics.Collider
	for _, e := range w.candidates(q, box) {
		if !overlaps(query, e.solid()) {
			continue
		}
		out = append(out, e.collider)
		if first {
			break
		}
	}
	return out
}

// OverlapSphere returns the colliders touching a sphere.
func (w *World) OverlapSphere(center math.Vec3, radius float32, q physics.Query) []*physics.Collider {
	return w.overlapping(wireframe.SphereShape(center, radius), q, false)
}

// OverlapBox returns the colliders touching a box.
func (w *World) OverlapBox(center, halfExtents math.Vec3, orient math.Quat, q physics.Query) []*physics.Collider {
	return w.overlapping(wireframe.BoxShape(center, halfExtents, orient), q, false)
}

// OverlapCapsule returns the colliders touching a capsule.
func (w *World) OverlapCapsule(point1, point2 math.Vec3, radius float32, q physics.Query) []*physics.Collider {
	return w.overlapping(wireframe.CapsuleShape(point1, point2, radius), q, false)
}

// CheckSphere reports whether any collider touches a sphere.
func (w *World) CheckSphere(center math.Vec3, radius float32, q physics.Query) bool {
	return len(w.overlapping(wireframe.SphereShape(center, radius), q, true)) > 0
}

// CheckBox reports whether any collider touches a box.
func (w *World) CheckBox(center, halfExtents math.Vec3, orient math.Quat, q physics.Query) bool {
	return len(w.overlapping(wireframe.BoxShape(center, halfExtents, orient), q, true)) > 0
}

// CheckCapsule reports whether any collider touches a capsule.
func (w *World) CheckCapsule(point1, point2 math.Vec3, radius float32, q physics.Query) bool {
	return len(w.overlapping(wireframe.CapsuleShape(point1, point2, radius), q, true)) > 0
}

// solidAt returns c's field at the given pose. Unregistered colliders get a
// field built from their shape.
func (w *World) solidAt(c *physics.Collider, position math.Vec3, rotation math.Quat) (solid, bool) {
	posed := c.Posed(position, rotation)
	if e, ok := w.byID[c.ID]; ok {
		return e.field.placed(posed), true
	}
	so, err := newSolid(posed)
	if err != nil {
		w.log.Debug("invalid collider shape", zap.Stringer("collider", c), zap.Error(err))
		return solid{}, false
	}
	return so, true
}

// ClosestPoint returns the point on c closest to point. Points inside c are
// returned unchanged.
func (w *World) ClosestPoint(point math.Vec3, c *physics.Collider, position math.Vec3, rotation math.Quat) math.Vec3 {
	if c == nil {
		return point
	}
	so, ok := w.solidAt(c, position, rotation)
	if !ok {
		return point
	}
	return so.project(point)
}

// ComputePenetration finds the shortest translation separating a from b.
func (w *World) ComputePenetration(a *physics.Collider, posA math.Vec3, rotA math.Quat, b *physics.Collider, posB math.Vec3, rotB math.Quat) (math.Vec3, float32, bool) {
	if a == nil || b == nil {
		return math.Vec3{}, 0, false
	}
	sa, ok := w.solidAt(a, posA, rotA)
	if !ok {
		return math.Vec3{}, 0, false
	}
	sb, ok := w.solidAt(b, posB, rotB)
	if !ok {
		return math.Vec3{}, 0, false
	}
	reach := extent(a.Posed(posA, rotA)) + extent(b.Posed(posB, rotB)) + posA.Distance(posB)
	return penetration(sa, sb, reach)
}

// penetration tries a set of candidate directions and bisects each for the
// distance a must travel to stop touching b.
func penetration(a, b solid, reach float32) (math.Vec3, float32, bool) {
	if !overlaps(a, b) {
		return math.Vec3{}, 0, false
	}
	dirs := []math.Vec3{
		a.center.Sub(b.center).Normalize(),
		b.normal(a.center),
	}
	for _, axis := range []math.Vec3{math.Right, math.Up, math.Forward} {
		for _, rot := range []math.Quat{math.QuatIdentity(), b.rot} {
			d := rot.Rotate(axis)
			dirs = append(dirs, d, d.Neg())
		}
	}

	bestDir := math.Up
	best := float32(math32.MaxFloat32)
	for _, d := range dirs {
		if d.IsZero() {
			continue
		}
		if s := separation(a, b, d, reach); s < best {
			best, bestDir = s, d
		}
	}
	return bestDir, best, true
}

// separation returns how far a must move along dir to clear b, capped at
// reach.
func separation(a, b solid, dir math.Vec3, reach float32) float32 {
	if overlaps(a.moved(dir.Scale(reach)), b) {
		return reach
	}
	var lo float32
	hi := reach
	for i := 0; i < separationRounds; i++ {
		mid := (lo + hi) / 2
		if overlaps(a.moved(dir.Scale(mid)), b) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// extent is half the diagonal of a shape's bounds.
func extent(s wireframe.Shape) float32 {
	min, max := s.Bounds()
	return max.Sub(min).Length() / 2
}
