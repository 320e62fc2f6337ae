package debugphysics

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// BoxCast reports whether a box swept from center hits anything. The whole
// swept volume is drawn in the hit or no-hit color.
func (p *Physics) BoxCast(center, halfExtents, direction math.Vec3, orient math.Quat, q physics.Query) bool {
	_, ok := p.engine.BoxCast(center, halfExtents, direction, orient, q)
	p.draw.BoxCast(center, halfExtents, orient, direction.Normalize(), p.drawLength(q.MaxDistance), p.color(ok))
	return ok
}

// BoxCastHit returns the nearest hit of a swept box. A hit draws the volume
// up to the hit distance.
func (p *Physics) BoxCastHit(center, halfExtents, direction math.Vec3, orient math.Quat, q physics.Query) (physics.Hit, bool) {
	hit, ok := p.engine.BoxCast(center, halfExtents, direction, orient, q)
	if ok {
		p.drawBoxHit(center, halfExtents, direction, orient, hit)
	} else {
		p.draw.BoxCast(center, halfExtents, orient, direction.Normalize(), p.drawLength(q.MaxDistance), p.settings.NoHitColor)
	}
	return hit, ok
}

// BoxCastAll returns every hit of a swept box.
func (p *Physics) BoxCastAll(center, halfExtents, direction math.Vec3, orient math.Quat, q physics.Query) []physics.Hit {
	hits := p.engine.BoxCastAll(center, halfExtents, direction, orient, q)
	p.drawBoxResults(center, halfExtents, direction, orient, hits, q.MaxDistance)
	return hits
}

// BoxCastNonAlloc stores the nearest hits of a swept box in results.
func (p *Physics) BoxCastNonAlloc(center, halfExtents, direction math.Vec3, orient math.Quat, results []physics.Hit, q physics.Query) int {
	n := p.fillHits("boxcast", p.engine.BoxCastAll(center, halfExtents, direction, orient, q), results)
	p.drawBoxResults(center, halfExtents, direction, orient, results[:n], q.MaxDistance)
	return n
}

func (p *Physics) drawBoxHit(center, halfExtents, direction math.Vec3, orient math.Quat, hit physics.Hit) {
	if hit.StartedOverlapping(direction) {
		p.draw.Box(center, halfExtents, orient, p.settings.HitColor)
		p.drawHitDetail(center, hit.Normal)
		return
	}
	p.draw.BoxCast(center, halfExtents, orient, direction.Normalize(), hit.Distance, p.settings.HitColor)
	p.drawHitDetail(hit.Point, hit.Normal)
}

// drawBoxResults estimates the furthest hit by projecting hit points on
// the cast direction. The remainder is drawn only while the capped length
// passes it.
func (p *Physics) drawBoxResults(center, halfExtents, direction math.Vec3, orient math.Quat, hits []physics.Hit, maxDistance float32) {
	dir := direction.Normalize()
	hits = validHits(hits)
	length := p.drawLength(maxDistance)
	if len(hits) == 0 {
		p.draw.BoxCast(center, halfExtents, orient, dir, length, p.settings.NoHitColor)
		return
	}
	far := furthest(hits, func(h physics.Hit) float32 {
		if h.StartedOverlapping(direction) {
			return 0
		}
		return math32.Max(h.Point.Sub(center).Dot(dir), 0)
	})
	if rest := length - far; rest > 0 {
		p.draw.BoxCast(center.Add(dir.Scale(far)), halfExtents, orient, dir, rest, p.settings.NoHitColor)
	}
	for _, h := range hits {
		p.drawBoxHit(center, halfExtents, direction, orient, h)
	}
}
