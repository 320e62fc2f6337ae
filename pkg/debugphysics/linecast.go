package debugphysics

import (
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// Linecast reports whether anything lies between start and end. The line
// is drawn in the hit or no-hit color. q.MaxDistance is ignored.
func (p *Physics) Linecast(start, end math.Vec3, q physics.Query) bool {
	_, ok := p.engine.Raycast(lineRay(start, end), q.WithDistance(start.Distance(end)))
	p.draw.Raycast(start, end, p.color(ok))
	return ok
}

// LinecastHit returns the first hit between start and end. A hit draws the
// line up to the hit point.
func (p *Physics) LinecastHit(start, end math.Vec3, q physics.Query) (physics.Hit, bool) {
	hit, ok := p.engine.Raycast(lineRay(start, end), q.WithDistance(start.Distance(end)))
	if ok {
		p.drawRayHit(start, hit)
	} else {
		p.draw.Raycast(start, end, p.settings.NoHitColor)
	}
	return hit, ok
}

func lineRay(start, end math.Vec3) physics.Ray {
	return physics.Ray{Origin: start, Direction: end.Sub(start)}
}
