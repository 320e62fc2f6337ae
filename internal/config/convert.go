package config

import (
	"github.com/Faultbox/physdebug/internal/scene"
	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/debugphysics"
	"github.com/Faultbox/physdebug/pkg/debugrigidbody"
	"github.com/Faultbox/physdebug/pkg/debugvec"
	"github.com/Faultbox/physdebug/pkg/math"
)

// Style returns the shared line style.
func (c *Config) Style() debugdraw.Style {
	return debugdraw.Style{
		Duration:   c.Draw.Duration.Std(),
		DepthTest:  c.Draw.DepthTest,
		PointScale: c.Draw.PointScale,
		ArrowScale: c.Draw.ArrowScale,
		Segments:   c.Draw.Segments,
	}
}

// PhysicsSettings returns the query wrapper settings.
func (c *Config) PhysicsSettings() debugphysics.Settings {
	p := c.Physics
	return debugphysics.Settings{
		HitColor:                 p.HitColor,
		NoHitColor:               p.NoHitColor,
		HitNormalColor:           p.HitNormalColor,
		Duration:                 c.Draw.Duration.Std(),
		IgnoreCollisionDuration:  p.IgnoreCollisionDuration.Std(),
		DepthTest:                c.Draw.DepthTest,
		MaxDrawLength:            p.MaxDrawLength,
		DrawHitPoints:            p.DrawHitPoints,
		DrawHitNormals:           p.DrawHitNormals,
		DrawOverlapColliders:     p.DrawOverlapColliders,
		DrawClosestPointCollider: p.DrawClosestPointCollider,
		DrawPenetrationColliders: p.DrawPenetrationColliders,
	}
}

// RigidbodySettings returns the rigid body debugger settings. Colors keep
// their defaults; the fixed step comes from the scene.
func (c *Config) RigidbodySettings() debugrigidbody.Settings {
	r := c.Rigidbody
	s := debugrigidbody.DefaultSettings()
	s.DrawExplosionSphere = r.DrawExplosionSphere
	s.DepthTest = c.Draw.DepthTest
	s.ArrowScale = c.Draw.ArrowScale
	s.MinTorqueDrawScale = r.MinTorqueDrawScale
	s.Duration = r.Duration.Std()
	s.FixedStep = c.Scene.FixedStep.Std()
	s.DrawWithFixedStep = r.DrawWithFixedStep
	s.ScaleForceUsingMass = r.ScaleForceUsingMass
	s.MinForceVectorLength = r.MinForceVectorLength
	s.MaxDrawSweepDistance = r.MaxDrawSweepDistance
	s.HitColor = c.Physics.HitColor
	s.NoHitColor = c.Physics.NoHitColor
	return s
}

// VectorSettings returns the vector math visualizer settings.
func (c *Config) VectorSettings() debugvec.Settings {
	v := c.Vector
	return debugvec.Settings{
		ShowOperands:    v.ShowOperands,
		ShowResult:      v.ShowResult,
		ColorA:          v.ColorA,
		ColorB:          v.ColorB,
		ResultColor:     v.ResultColor,
		Arrows:          v.Arrows,
		ArrowScale:      c.Draw.ArrowScale,
		Duration:        c.Draw.Duration.Std(),
		DepthTest:       c.Draw.DepthTest,
		DotAsProjection: v.DotAsProjection,
	}
}

// ApplyScene copies the world settings onto w.
func (c *Config) ApplyScene(w *scene.World) {
	w.Gravity = math.Vec3{Y: c.Scene.Gravity}
	w.QueriesHitTriggers = c.Scene.QueriesHitTriggers
}
