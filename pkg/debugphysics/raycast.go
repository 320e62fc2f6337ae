package debugphysics

import (
	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// Raycast reports whether ray hits anything within q, drawing the ray up
// to the capped max distance in the hit or no-hit color.
func (p *Physics) Raycast(ray physics.Ray, q physics.Query) bool {
	_, ok := p.engine.Raycast(ray, q)
	p.drawRay(ray, q.MaxDistance, p.color(ok))
	return ok
}

// RaycastHit casts ray and returns the nearest hit. A hit draws the ray up
// to the hit point.
func (p *Physics) RaycastHit(ray physics.Ray, q physics.Query) (physics.Hit, bool) {
	hit, ok := p.engine.Raycast(ray, q)
	if ok {
		p.drawRayHit(ray.Origin, hit)
	} else {
		p.drawRay(ray, q.MaxDistance, p.settings.NoHitColor)
	}
	return hit, ok
}

// RaycastAll returns every hit along ray.
func (p *Physics) RaycastAll(ray physics.Ray, q physics.Query) []physics.Hit {
	hits := p.engine.RaycastAll(ray, q)
	p.drawRayResults(ray, hits, q.MaxDistance)
	return hits
}

// RaycastNonAlloc stores the nearest hits along ray in results and returns
// how many it stored.
func (p *Physics) RaycastNonAlloc(ray physics.Ray, results []physics.Hit, q physics.Query) int {
	n := p.fillHits("raycast", p.engine.RaycastAll(ray, q), results)
	p.drawRayResults(ray, results[:n], q.MaxDistance)
	return n
}

func (p *Physics) drawRay(ray physics.Ray, maxDistance float32, color debugdraw.Color) {
	p.draw.Raycast(ray.Origin, ray.At(p.drawLength(maxDistance)), color)
}

func (p *Physics) drawRayHit(origin math.Vec3, hit physics.Hit) {
	p.draw.Raycast(origin, hit.Point, p.settings.HitColor)
	p.drawHitDetail(hit.Point, hit.Normal)
}

// drawRayResults draws the no-hit remainder beyond the furthest hit and
// then every hit.
func (p *Physics) drawRayResults(ray physics.Ray, hits []physics.Hit, maxDistance float32) {
	hits = validHits(hits)
	if len(hits) == 0 {
		p.drawRay(ray, maxDistance, p.settings.NoHitColor)
		return
	}
	far := furthest(hits, func(h physics.Hit) float32 { return ray.Origin.Distance(h.Point) })
	if length := p.drawLength(maxDistance); length > far {
		p.draw.Raycast(ray.At(far), ray.At(length), p.settings.NoHitColor)
	}
	for _, h := range hits {
		p.drawRayHit(ray.Origin, h)
	}
}
