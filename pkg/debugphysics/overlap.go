package debugphysics

import (
	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// OverlapSphere returns the colliders touching a sphere and draws the
// sphere in the hit or no-hit color.
func (p *Physics) OverlapSphere(center math.Vec3, radius float32, q physics.Query) []*physics.Collider {
	found := p.engine.OverlapSphere(center, radius, q)
	p.drawOverlap(found, func(c debugdraw.Color) { p.draw.Sphere(center, radius, math.Up, c) })
	return found
}

// OverlapSphereNonAlloc stores the colliders touching a sphere in results.
func (p *Physics) OverlapSphereNonAlloc(center math.Vec3, radius float32, results []*physics.Collider, q physics.Query) int {
	n := p.fillColliders("overlap sphere", p.engine.OverlapSphere(center, radius, q), results)
	p.drawOverlap(results[:n], func(c debugdraw.Color) { p.draw.Sphere(center, radius, math.Up, c) })
	return n
}

// OverlapBox returns the colliders touching a box.
func (p *Physics) OverlapBox(center, halfExtents math.Vec3, orient math.Quat, q physics.Query) []*physics.Collider {
	found := p.engine.OverlapBox(center, halfExtents, orient, q)
	p.drawOverlap(found, func(c debugdraw.Color) { p.draw.Box(center, halfExtents, orient, c) })
	return found
}

// OverlapBoxNonAlloc stores the colliders touching a box in results.
func (p *Physics) OverlapBoxNonAlloc(center, halfExtents math.Vec3, orient math.Quat, results []*physics.Collider, q physics.Query) int {
	n := p.fillColliders("overlap box", p.engine.OverlapBox(center, halfExtents, orient, q), results)
	p.drawOverlap(results[:n], func(c debugdraw.Color) { p.draw.Box(center, halfExtents, orient, c) })
	return n
}

// OverlapCapsule returns the colliders touching a capsule.
func (p *Physics) OverlapCapsule(point1, point2 math.Vec3, radius float32, q physics.Query) []*physics.Collider {
	found := p.engine.OverlapCapsule(point1, point2, radius, q)
	p.drawOverlap(found, func(c debugdraw.Color) { p.draw.Capsule(point1, point2, radius, c) })
	return found
}

// OverlapCapsuleNonAlloc stores the colliders touching a capsule in results.
func (p *Physics) OverlapCapsuleNonAlloc(point1, point2 math.Vec3, radius float32, results []*physics.Collider, q physics.Query) int {
	n := p.fillColliders("overlap capsule", p.engine.OverlapCapsule(point1, point2, radius, q), results)
	p.drawOverlap(results[:n], func(c debugdraw.Color) { p.draw.Capsule(point1, point2, radius, c) })
	return n
}

// drawOverlap draws the overlapping colliders, when enabled, and then the
// query volume.
func (p *Physics) drawOverlap(found []*physics.Collider, volume func(debugdraw.Color)) {
	if len(found) == 0 {
		volume(p.settings.NoHitColor)
		return
	}
	if p.settings.DrawOverlapColliders {
		p.drawColliders(p.draw, found, p.settings.HitColor)
	}
	volume(p.settings.HitColor)
}
