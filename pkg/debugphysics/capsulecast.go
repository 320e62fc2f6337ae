package debugphysics

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// CapsuleCast reports whether a capsule swept along direction hits
// anything. The whole swept volume is drawn in the hit or no-hit color.
func (p *Physics) CapsuleCast(point1, point2 math.Vec3, radius float32, direction math.Vec3, q physics.Query) bool {
	_, ok := p.engine.CapsuleCast(point1, point2, radius, direction, q)
	p.drawCapsuleSweep(point1, point2, radius, direction, 0, p.drawLength(q.MaxDistance), p.color(ok))
	return ok
}

// CapsuleCastHit returns the nearest hit of a swept capsule. A hit draws
// the volume up to the hit distance.
func (p *Physics) CapsuleCastHit(point1, point2 math.Vec3, radius float32, direction math.Vec3, q physics.Query) (physics.Hit, bool) {
	hit, ok := p.engine.CapsuleCast(point1, point2, radius, direction, q)
	if ok {
		p.drawCapsuleHit(point1, point2, radius, direction, hit)
	} else {
		p.drawCapsuleSweep(point1, point2, radius, direction, 0, p.drawLength(q.MaxDistance), p.settings.NoHitColor)
	}
	return hit, ok
}

// CapsuleCastAll returns every hit of a swept capsule.
func (p *Physics) CapsuleCastAll(point1, point2 math.Vec3, radius float32, direction math.Vec3, q physics.Query) []physics.Hit {
	hits := p.engine.CapsuleCastAll(point1, point2, radius, direction, q)
	p.drawCapsuleResults(point1, point2, radius, direction, hits, q.MaxDistance)
	return hits
}

// CapsuleCastNonAlloc stores the nearest hits of a swept capsule in results.
func (p *Physics) CapsuleCastNonAlloc(point1, point2 math.Vec3, radius float32, direction math.Vec3, results []physics.Hit, q physics.Query) int {
	n := p.fillHits("capsulecast", p.engine.CapsuleCastAll(point1, point2, radius, direction, q), results)
	p.drawCapsuleResults(point1, point2, radius, direction, results[:n], q.MaxDistance)
	return n
}

// drawCapsuleSweep draws the capsule swept between the offsets from and to
// along direction.
func (p *Physics) drawCapsuleSweep(point1, point2 math.Vec3, radius float32, direction math.Vec3, from, to float32, color debugdraw.Color) {
	dir := direction.Normalize()
	start, end := dir.Scale(from), dir.Scale(to)
	p.draw.CapsuleCast(point1.Add(start), point2.Add(start), point1.Add(end), point2.Add(end), radius, color)
}

func (p *Physics) drawCapsuleHit(point1, point2 math.Vec3, radius float32, direction math.Vec3, hit physics.Hit) {
	if hit.StartedOverlapping(direction) {
		mid := point1.Add(point2).Scale(0.5)
		p.draw.Capsule(point1, point2, radius, p.settings.HitColor)
		p.drawHitDetail(mid, hit.Normal)
		return
	}
	p.drawCapsuleSweep(point1, point2, radius, direction, 0, hit.Distance, p.settings.HitColor)
	p.drawHitDetail(hit.Point, hit.Normal)
}

// drawCapsuleResults estimates the furthest hit by projecting hit points
// from the capsule midpoint on the cast direction.
func (p *Physics) drawCapsuleResults(point1, point2 math.Vec3, radius float32, direction math.Vec3, hits []physics.Hit, maxDistance float32) {
	dir := direction.Normalize()
	hits = validHits(hits)
	length := p.drawLength(maxDistance)
	if len(hits) == 0 {
		p.drawCapsuleSweep(point1, point2, radius, direction, 0, length, p.settings.NoHitColor)
		return
	}
	mid := point1.Add(point2).Scale(0.5)
	far := furthest(hits, func(h physics.Hit) float32 {
		if h.StartedOverlapping(direction) {
			return 0
		}
		return math32.Max(h.Point.Sub(mid).Dot(dir), 0)
	})
	if length > far {
		p.drawCapsuleSweep(point1, point2, radius, direction, far, length, p.settings.NoHitColor)
	}
	for _, h := range hits {
		p.drawCapsuleHit(point1, point2, radius, direction, h)
	}
}
