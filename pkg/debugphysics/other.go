package debugphysics

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// ClosestPoint returns the point on c, posed at position and rotation,
// closest to point. The result is drawn as a point, and the posed collider
// too when DrawClosestPointCollider is set.
func (p *Physics) ClosestPoint(point math.Vec3, c *physics.Collider, position math.Vec3, rotation math.Quat) math.Vec3 {
	closest := p.engine.ClosestPoint(point, c, position, rotation)
	p.draw.Point(closest, p.settings.HitColor)
	if p.settings.DrawClosestPointCollider && c != nil {
		_ = p.draw.Shape(c.Posed(position, rotation), p.settings.HitColor, true)
	}
	return closest
}

// ComputePenetration returns the translation separating a from b. When they
// overlap the separation is drawn from posA; otherwise a line joins the two
// positions.
func (p *Physics) ComputePenetration(a *physics.Collider, posA math.Vec3, rotA math.Quat, b *physics.Collider, posB math.Vec3, rotB math.Quat) (math.Vec3, float32, bool) {
	dir, dist, ok := p.engine.ComputePenetration(a, posA, rotA, b, posB, rotB)
	color := p.color(ok)
	if p.settings.DrawPenetrationColliders {
		if a != nil {
			_ = p.draw.Shape(a.Posed(posA, rotA), color, true)
		}
		if b != nil {
			_ = p.draw.Shape(b.Posed(posB, rotB), color, true)
		}
	}
	if ok {
		p.draw.Line(posA, posA.Add(dir.Scale(dist)), color)
	} else {
		p.draw.Line(posA, posB, color)
	}
	return dir, dist, ok
}

// IgnoreCollision toggles collisions between a and b and draws both, in the
// no-hit color when ignoring and the hit color otherwise.
func (p *Physics) IgnoreCollision(a, b *physics.Collider, ignore bool) {
	p.engine.IgnoreCollision(a, b, ignore)
	p.log.Debug("ignore collision",
		zap.Stringer("a", a),
		zap.Stringer("b", b),
		zap.Bool("ignore", ignore))
	color := p.settings.HitColor
	if ignore {
		color = p.settings.NoHitColor
	}
	p.drawColliders(p.ignore, []*physics.Collider{a, b}, color)
}

// IgnoreLayerCollision toggles collisions between two layers.
func (p *Physics) IgnoreLayerCollision(layer1, layer2 int, ignore bool) {
	p.engine.IgnoreLayerCollision(layer1, layer2, ignore)
}

// GetIgnoreLayerCollision reports whether two layers ignore each other.
func (p *Physics) GetIgnoreLayerCollision(layer1, layer2 int) bool {
	return p.engine.GetIgnoreLayerCollision(layer1, layer2)
}

// Simulate advances the engine by step.
func (p *Physics) Simulate(step time.Duration) {
	p.engine.Simulate(step)
}
