// Package physics defines the query contract the debug wrappers consume.
//
// Engine is implemented by whatever owns collision detection. The wrappers
// in package debugphysics only read its results; they never inspect a
// collider beyond its Shape.
package physics

import (
	"time"

	"github.com/Faultbox/physdebug/pkg/math"
)

// Caster sweeps rays and volumes through the world.
// Single-hit casts return the nearest hit; All variants return every hit in
// no particular order.
type Caster interface {
	Raycast(ray Ray, q Query) (Hit, bool)
	RaycastAll(ray Ray, q Query) []Hit
	SphereCast(origin math.Vec3, radius float32, direction math.Vec3, q Query) (Hit, bool)
	SphereCastAll(origin math.Vec3, radius float32, direction math.Vec3, q Query) []Hit
	BoxCast(center, halfExtents, direction math.Vec3, orient math.Quat, q Query) (Hit, bool)
	BoxCastAll(center, halfExtents, direction math.Vec3, orient math.Quat, q Query) []Hit
	CapsuleCast(point1, point2 math.Vec3, radius float32, direction math.Vec3, q Query) (Hit, bool)
	CapsuleCastAll(point1, point2 math.Vec3, radius float32, direction math.Vec3, q Query) []Hit
}

// Overlapper finds colliders intersecting a static volume.
// q.MaxDistance is ignored.
type Overlapper interface {
	OverlapSphere(center math.Vec3, radius float32, q Query) []*Collider
	OverlapBox(center, halfExtents math.Vec3, orient math.Quat, q Query) []*Collider
	OverlapCapsule(point1, point2 math.Vec3, radius float32, q Query) []*Collider
	CheckSphere(center math.Vec3, radius float32, q Query) bool
	CheckBox(center, halfExtents math.Vec3, orient math.Quat, q Query) bool
	CheckCapsule(point1, point2 math.Vec3, radius float32, q Query) bool
}

// Solver exposes the remaining world operations.
type Solver interface {
	// ClosestPoint returns the point on c, posed at position and rotation,
	// closest to point.
	ClosestPoint(point math.Vec3, c *Collider, position math.Vec3, rotation math.Quat) math.Vec3
	// ComputePenetration returns the direction and distance a must move to
	// separate from b at the given poses. ok is false when they do not overlap.
	ComputePenetration(a *Collider, posA math.Vec3, rotA math.Quat, b *Collider, posB math.Vec3, rotB math.Quat) (direction math.Vec3, distance float32, ok bool)
	IgnoreCollision(a, b *Collider, ignore bool)
	IgnoreLayerCollision(layer1, layer2 int, ignore bool)
	GetIgnoreLayerCollision(layer1, layer2 int) bool
	Simulate(step time.Duration)
}

// Engine is the full physics query facade.
type Engine interface {
	Caster
	Overlapper
	Solver
}
