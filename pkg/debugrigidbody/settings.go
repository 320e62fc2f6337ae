package debugrigidbody

import (
	"time"

	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// Settings controls how forces, torques and body queries are drawn.
type Settings struct {
	// DrawExplosionSphere draws the explosion radius, or a point when the
	// radius is zero.
	DrawExplosionSphere bool
	DepthTest           bool
	ArrowScale          float32
	// MinTorqueDrawScale is the smallest radius of the torque arcs.
	MinTorqueDrawScale float32

	// Duration is the line lifetime when DrawWithFixedStep is off.
	Duration time.Duration
	// FixedStep is the simulation step, used as the line lifetime when
	// DrawWithFixedStep is on.
	FixedStep         time.Duration
	DrawWithFixedStep bool

	// ScaleForceUsingMass divides Force and Impulse vectors by the body mass.
	ScaleForceUsingMass bool
	// MinForceVectorLength hides force vectors shorter than this.
	MinForceVectorLength float32
	// MaxDrawSweepDistance caps the drawn length of sweep tests.
	MaxDrawSweepDistance float32

	ExplosionColor      debugdraw.Color
	VelocityColor       debugdraw.Color
	ForceColor          debugdraw.Color
	AccelerationColor   debugdraw.Color
	ImpulseColor        debugdraw.Color
	VelocityChangeColor debugdraw.Color
	HitColor            debugdraw.Color
	NoHitColor          debugdraw.Color
	QueryColor          debugdraw.Color
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		DrawExplosionSphere:  true,
		DepthTest:            false,
		ArrowScale:           0.1,
		MinTorqueDrawScale:   1,
		Duration:             20 * time.Millisecond,
		FixedStep:            20 * time.Millisecond,
		DrawWithFixedStep:    true,
		ScaleForceUsingMass:  true,
		MaxDrawSweepDistance: 10,
		ExplosionColor:       debugdraw.Red,
		VelocityColor:        debugdraw.Magenta,
		ForceColor:           debugdraw.Green,
		AccelerationColor:    debugdraw.Yellow,
		ImpulseColor:         debugdraw.Blue,
		VelocityChangeColor:  debugdraw.Red,
		HitColor:             debugdraw.Green,
		NoHitColor:           debugdraw.Red,
		QueryColor:           debugdraw.Cyan,
	}
}

// ForceModeColor returns the color forces of the given mode are drawn in.
// Unknown modes use ForceColor.
func (s Settings) ForceModeColor(mode physics.ForceMode) debugdraw.Color {
	switch mode {
	case physics.ForceModeAcceleration:
		return s.AccelerationColor
	case physics.ForceModeImpulse:
		return s.ImpulseColor
	case physics.ForceModeVelocityChange:
		return s.VelocityChangeColor
	default:
		return s.ForceColor
	}
}

func (s Settings) lineDuration() time.Duration {
	if s.DrawWithFixedStep {
		return s.FixedStep
	}
	return s.Duration
}
