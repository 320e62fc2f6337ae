package scene

import (
	"time"

	"go.uber.org/zap"
)

// Simulate advances every body by step and pushes bodies out of the
// colliders they collide with.
func (w *World) Simulate(step time.Duration) {
	dt := float32(step.Seconds())
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.integrate(dt, w.Gravity)
	}
	for _, b := range w.bodies {
		if !b.Kinematic {
			w.resolve(b)
		}
	}
	w.elapsed += step
}

// resolve separates b from every collider it touches and removes the
// velocity component pointing into the contact.
func (w *World) resolve(b *Body) {
	self := b.entry.collider
	if self.Trigger {
		return
	}
	for _, e := range w.entries {
		other := e.collider
		if e == b.entry || other.Trigger || w.ignores(self, other) {
			continue
		}
		if !b.entry.bounds().Overlaps(e.bounds()) {
			continue
		}
		a, so := b.entry.solid(), e.solid()
		reach := extent(self.Shape) + extent(other.Shape) + a.center.Distance(so.center)
		dir, dist, ok := penetration(a, so, reach)
		if !ok {
			continue
		}
		b.setPose(b.Position().Add(dir.Scale(dist)), b.rotation)
		if vn := b.velocity.Dot(dir); vn < 0 {
			b.velocity = b.velocity.Sub(dir.Scale(vn))
		}
		w.log.Debug("contact resolved",
			zap.String("body", self.Name),
			zap.String("other", other.Name),
			zap.Float32("depth", dist))
	}
}
