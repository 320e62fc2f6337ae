package debugphysics

import (
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// CheckSphere reports whether any collider touches a sphere.
func (p *Physics) CheckSphere(center math.Vec3, radius float32, q physics.Query) bool {
	ok := p.engine.CheckSphere(center, radius, q)
	p.draw.Sphere(center, radius, math.Up, p.color(ok))
	return ok
}

// CheckBox reports whether any collider touches a box.
func (p *Physics) CheckBox(center, halfExtents math.Vec3, orient math.Quat, q physics.Query) bool {
	ok := p.engine.CheckBox(center, halfExtents, orient, q)
	p.draw.Box(center, halfExtents, orient, p.color(ok))
	return ok
}

// CheckCapsule reports whether any collider touches a capsule.
func (p *Physics) CheckCapsule(point1, point2 math.Vec3, radius float32, q physics.Query) bool {
	ok := p.engine.CheckCapsule(point1, point2, radius, q)
	p.draw.Capsule(point1, point2, radius, p.color(ok))
	return ok
}
