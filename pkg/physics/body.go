package physics

import "github.com/Faultbox/physdebug/pkg/math"

// ForceMode selects how a force is applied to a body.
type ForceMode int

const (
	// ForceModeForce is a continuous force scaled by mass and step.
	ForceModeForce ForceMode = iota
	// ForceModeAcceleration is a continuous force ignoring mass.
	ForceModeAcceleration
	// ForceModeImpulse is an instant change in momentum.
	ForceModeImpulse
	// ForceModeVelocityChange is an instant change in velocity ignoring mass.
	ForceModeVelocityChange
)

func (m ForceMode) String() string {
	switch m {
	case ForceModeForce:
		return "force"
	case ForceModeAcceleration:
		return "acceleration"
	case ForceModeImpulse:
		return "impulse"
	case ForceModeVelocityChange:
		return "velocity-change"
	default:
		return "unknown"
	}
}

// UsesMass reports whether the mode divides by body mass.
func (m ForceMode) UsesMass() bool {
	return m == ForceModeForce || m == ForceModeImpulse
}

// Body is a rigid body driven by an engine.
type Body interface {
	Collider() *Collider
	Mass() float32
	Position() math.Vec3
	Rotation() math.Quat
	WorldCenterOfMass() math.Vec3
	Velocity() math.Vec3
	SetVelocity(v math.Vec3)
	AngularVelocity() math.Vec3

	AddForce(force math.Vec3, mode ForceMode)
	AddForceAtPosition(force, position math.Vec3, mode ForceMode)
	AddRelativeForce(force math.Vec3, mode ForceMode)
	AddTorque(torque math.Vec3, mode ForceMode)
	AddRelativeTorque(torque math.Vec3, mode ForceMode)
	AddExplosionForce(force float32, position math.Vec3, radius, upwardsModifier float32, mode ForceMode)

	ClosestPointOnBounds(p math.Vec3) math.Vec3
	PointVelocity(worldPoint math.Vec3) math.Vec3
	RelativePointVelocity(localPoint math.Vec3) math.Vec3
	SweepTest(direction math.Vec3, maxDistance float32) (Hit, bool)
	SweepTestAll(direction math.Vec3, maxDistance float32) []Hit
}
