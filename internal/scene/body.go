package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

var _ physics.Body = (*Body)(nil)

// Body is a rigid body attached to one collider. Inertia is a scalar equal
// to the mass and the center of mass is the collider center.
type Body struct {
	UseGravity  bool
	Kinematic   bool
	Drag        float32
	AngularDrag float32

	world    *World
	entry    *entry
	mass     float32
	rotation math.Quat

	velocity        math.Vec3
	angularVelocity math.Vec3
	acceleration    math.Vec3
	angularAccel    math.Vec3
}

// AddBody attaches a body of the given mass to a registered collider.
func (w *World) AddBody(c *physics.Collider, mass float32) (*Body, error) {
	if c == nil {
		return nil, fmt.Errorf("adding body: %w", ErrInvalidShape)
	}
	e, ok := w.byID[c.ID]
	if !ok {
		return nil, fmt.Errorf("collider %s is not in the world", c.Name)
	}
	if e.body != nil {
		return nil, fmt.Errorf("collider %s already has a body", c.Name)
	}
	if !(mass > 0) {
		return nil, fmt.Errorf("body %s: mass must be positive, got %v", c.Name, mass)
	}
	b := &Body{
		UseGravity:  true,
		AngularDrag: 0.05,
		world:       w,
		entry:       e,
		mass:        mass,
		rotation:    c.Shape.Orientation.Normalize(),
	}
	e.body = b
	w.bodies = append(w.bodies, b)
	w.log.Debug("body added", zap.String("collider", c.Name), zap.Float32("mass", mass))
	return b, nil
}

// Collider returns the collider the body moves.
func (b *Body) Collider() *physics.Collider { return b.entry.collider }

func (b *Body) Mass() float32 { return b.mass }

func (b *Body) Position() math.Vec3 { return b.entry.collider.Position() }

func (b *Body) Rotation() math.Quat { return b.rotation }

func (b *Body) WorldCenterOfMass() math.Vec3 { return b.Position() }

func (b *Body) Velocity() math.Vec3 { return b.velocity }

func (b *Body) SetVelocity(v math.Vec3) { b.velocity = v }

func (b *Body) AngularVelocity() math.Vec3 { return b.angularVelocity }

// SetAngularVelocity replaces the angular velocity in radians per second.
func (b *Body) SetAngularVelocity(v math.Vec3) { b.angularVelocity = v }

// MovePosition teleports the body.
func (b *Body) MovePosition(p math.Vec3) { b.setPose(p, b.rotation) }

func (b *Body) setPose(position math.Vec3, rotation math.Quat) {
	c := b.entry.collider
	c.Shape = c.Posed(position, rotation)
	b.rotation = rotation
}

// apply routes a linear quantity into the body by mode.
func (b *Body) apply(v math.Vec3, mode physics.ForceMode, instant, continuous *math.Vec3) {
	if mode.UsesMass() {
		v = v.Scale(1 / b.mass)
	}
	switch mode {
	case physics.ForceModeImpulse, physics.ForceModeVelocityChange:
		*instant = instant.Add(v)
	default:
		*continuous = continuous.Add(v)
	}
}

func (b *Body) AddForce(force math.Vec3, mode physics.ForceMode) {
	b.apply(force, mode, &b.velocity, &b.acceleration)
}

func (b *Body) AddForceAtPosition(force, position math.Vec3, mode physics.ForceMode) {
	b.AddForce(force, mode)
	b.AddTorque(position.Sub(b.WorldCenterOfMass()).Cross(force), mode)
}

func (b *Body) AddRelativeForce(force math.Vec3, mode physics.ForceMode) {
	b.AddForce(b.rotation.Rotate(force), mode)
}

func (b *Body) AddTorque(torque math.Vec3, mode physics.ForceMode) {
	b.apply(torque, mode, &b.angularVelocity, &b.angularAccel)
}

func (b *Body) AddRelativeTorque(torque math.Vec3, mode physics.ForceMode) {
	b.AddTorque(b.rotation.Rotate(torque), mode)
}

// AddExplosionForce pushes the body away from position. The force falls off
// linearly to zero at radius; a zero radius means no falloff.
func (b *Body) AddExplosionForce(force float32, position math.Vec3, radius, upwardsModifier float32, mode physics.ForceMode) {
	origin := position
	origin.Y -= upwardsModifier
	com := b.WorldCenterOfMass()
	d := b.ClosestPointOnBounds(origin).Distance(origin)
	if radius > 0 && d > radius {
		return
	}
	scale := float32(1)
	if radius > 0 {
		scale = 1 - d/radius
	}
	dir := com.Sub(origin).Normalize()
	if dir.IsZero() {
		dir = math.Up
	}
	b.AddForce(dir.Scale(force*scale), mode)
}

func (b *Body) ClosestPointOnBounds(p math.Vec3) math.Vec3 {
	return b.entry.bounds().ClosestPoint(p)
}

func (b *Body) PointVelocity(worldPoint math.Vec3) math.Vec3 {
	return b.velocity.Add(b.angularVelocity.Cross(worldPoint.Sub(b.WorldCenterOfMass())))
}

func (b *Body) RelativePointVelocity(localPoint math.Vec3) math.Vec3 {
	return b.PointVelocity(b.Position().Add(b.rotation.Rotate(localPoint)))
}

// SweepTest casts the body's collider along direction and returns the
// nearest hit, skipping colliders the body ignores.
func (b *Body) SweepTest(direction math.Vec3, maxDistance float32) (physics.Hit, bool) {
	return nearest(b.SweepTestAll(direction, maxDistance))
}

func (b *Body) SweepTestAll(direction math.Vec3, maxDistance float32) []physics.Hit {
	q := physics.DefaultQuery().WithDistance(maxDistance)
	return b.world.sweepHits(b.entry.collider.Shape, direction, q, b.entry.collider)
}

// integrate advances the body by dt seconds with explicit Euler.
func (b *Body) integrate(dt float32, gravity math.Vec3) {
	defer func() {
		b.acceleration = math.Vec3{}
		b.angularAccel = math.Vec3{}
	}()
	if b.Kinematic {
		return
	}

	accel := b.acceleration
	if b.UseGravity {
		accel = accel.Add(gravity)
	}
	b.velocity = b.velocity.Add(accel.Scale(dt)).Scale(math32.Max(0, 1-b.Drag*dt))
	b.angularVelocity = b.angularVelocity.Add(b.angularAccel.Scale(dt)).Scale(math32.Max(0, 1-b.AngularDrag*dt))

	rot := b.rotation
	if speed := b.angularVelocity.Length(); speed > 0 {
		spin := math.QuatFromAxisAngle(b.angularVelocity.Scale(1/speed), speed*dt)
		rot = spin.Mul(rot).Normalize()
	}
	b.setPose(b.Position().Add(b.velocity.Scale(dt)), rot)
}
