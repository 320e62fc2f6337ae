package debugphysics

import (
	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// SphereCast reports whether a sphere swept from origin hits anything. The
// whole swept volume is drawn in the hit or no-hit color.
func (p *Physics) SphereCast(origin math.Vec3, radius float32, direction math.Vec3, q physics.Query) bool {
	_, ok := p.engine.SphereCast(origin, radius, direction, q)
	p.drawSphereSweep(origin, radius, direction, 0, p.drawLength(q.MaxDistance), p.color(ok))
	return ok
}

// SphereCastHit returns the nearest hit of a swept sphere. A hit draws the
// volume up to where the sphere stopped.
func (p *Physics) SphereCastHit(origin math.Vec3, radius float32, direction math.Vec3, q physics.Query) (physics.Hit, bool) {
	hit, ok := p.engine.SphereCast(origin, radius, direction, q)
	if ok {
		p.drawSphereHit(origin, radius, direction, hit)
	} else {
		p.drawSphereSweep(origin, radius, direction, 0, p.drawLength(q.MaxDistance), p.settings.NoHitColor)
	}
	return hit, ok
}

// SphereCastAll returns every hit of a swept sphere.
func (p *Physics) SphereCastAll(origin math.Vec3, radius float32, direction math.Vec3, q physics.Query) []physics.Hit {
	hits := p.engine.SphereCastAll(origin, radius, direction, q)
	p.drawSphereResults(origin, radius, direction, hits, q.MaxDistance)
	return hits
}

// SphereCastNonAlloc stores the nearest hits of a swept sphere in results.
func (p *Physics) SphereCastNonAlloc(origin math.Vec3, radius float32, direction math.Vec3, results []physics.Hit, q physics.Query) int {
	n := p.fillHits("spherecast", p.engine.SphereCastAll(origin, radius, direction, q), results)
	p.drawSphereResults(origin, radius, direction, results[:n], q.MaxDistance)
	return n
}

// drawSphereSweep draws the sphere swept between from and to along
// direction.
func (p *Physics) drawSphereSweep(origin math.Vec3, radius float32, direction math.Vec3, from, to float32, color debugdraw.Color) {
	dir := direction.Normalize()
	p.draw.SphereCast(origin.Add(dir.Scale(from)), origin.Add(dir.Scale(to)), radius, dir, color)
}

func (p *Physics) drawSphereHit(origin math.Vec3, radius float32, direction math.Vec3, hit physics.Hit) {
	if hit.StartedOverlapping(direction) {
		p.draw.Sphere(origin, radius, direction, p.settings.HitColor)
		p.drawHitDetail(origin, hit.Normal)
		return
	}
	end := hit.Point.Add(hit.Normal.Scale(radius))
	p.draw.SphereCast(origin, end, radius, direction.Normalize(), p.settings.HitColor)
	p.drawHitDetail(hit.Point, hit.Normal)
}

func (p *Physics) drawSphereResults(origin math.Vec3, radius float32, direction math.Vec3, hits []physics.Hit, maxDistance float32) {
	hits = validHits(hits)
	length := p.drawLength(maxDistance)
	if len(hits) == 0 {
		p.drawSphereSweep(origin, radius, direction, 0, length, p.settings.NoHitColor)
		return
	}
	far := furthest(hits, func(h physics.Hit) float32 {
		if h.StartedOverlapping(direction) {
			return 0
		}
		return origin.Distance(h.Point.Add(h.Normal.Scale(radius)))
	})
	if length > far {
		p.drawSphereSweep(origin, radius, direction, far, length, p.settings.NoHitColor)
	}
	for _, h := range hits {
		p.drawSphereHit(origin, radius, direction, h)
	}
}
