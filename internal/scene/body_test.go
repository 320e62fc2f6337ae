package scene

import (
	"testing"
	"time"

	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

func newBody(t *testing.T, w *World, center math.Vec3, mass float32) *Body {
	t.Helper()
	c := mustSphere(t, w, "body", center, 0.5)
	b, err := w.AddBody(c, mass)
	if err != nil {
		t.Fatalf("AddBody: %v", err)
	}
	return b
}

func TestAddBodyErrors(t *testing.T) {
	w := NewWorld(nil)
	c := mustSphere(t, w, "a", math.Zero, 1)

	if _, err := w.AddBody(c, 0); err == nil {
		t.Error("expected error for zero mass")
	}
	if _, err := w.AddBody(physics.NewCollider("loose", c.Shape), 1); err == nil {
		t.Error("expected error for unregistered collider")
	}
	if _, err := w.AddBody(c, 1); err != nil {
		t.Fatalf("AddBody: %v", err)
	}
	if _, err := w.AddBody(c, 1); err == nil {
		t.Error("expected error for second body on one collider")
	}
}

func TestForceModes(t *testing.T) {
	tests := []struct {
		mode physics.ForceMode
		want math.Vec3
	}{
		{physics.ForceModeImpulse, math.Vec3{X: 2}},
		{physics.ForceModeVelocityChange, math.Vec3{X: 4}},
		{physics.ForceModeForce, math.Vec3{X: 0.2}},
		{physics.ForceModeAcceleration, math.Vec3{X: 0.4}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			w := NewWorld(nil)
			b := newBody(t, w, math.Zero, 2)
			b.UseGravity = false
			b.AngularDrag = 0

			b.AddForce(math.Vec3{X: 4}, tt.mode)
			w.Simulate(100 * time.Millisecond)
			if !b.Velocity().ApproxEqual(tt.want, 1e-5) {
				t.Errorf("velocity = %v, want %v", b.Velocity(), tt.want)
			}
		})
	}
}

func TestContinuousForceClearsAfterStep(t *testing.T) {
	w := NewWorld(nil)
	b := newBody(t, w, math.Zero, 1)
	b.UseGravity = false

	b.AddForce(math.Vec3{Y: 10}, physics.ForceModeAcceleration)
	w.Simulate(time.Second)
	w.Simulate(time.Second)
	if !b.Velocity().ApproxEqual(math.Vec3{Y: 10}, 1e-4) {
		t.Errorf("velocity = %v, want (0,10,0)", b.Velocity())
	}
	if !b.Position().ApproxEqual(math.Vec3{Y: 20}, 1e-3) {
		t.Errorf("position = %v, want (0,20,0)", b.Position())
	}
	if w.Elapsed() != 2*time.Second {
		t.Errorf("elapsed = %v", w.Elapsed())
	}
}

func TestTorqueAndPointVelocity(t *testing.T) {
	w := NewWorld(nil)
	b := newBody(t, w, math.Zero, 2)

	b.AddTorque(math.Vec3{Y: 4}, physics.ForceModeImpulse)
	if !b.AngularVelocity().ApproxEqual(math.Vec3{Y: 2}, 1e-6) {
		t.Fatalf("angular velocity = %v, want (0,2,0)", b.AngularVelocity())
	}
	// ω × r with ω = (0,2,0), r = (1,0,0).
	if got := b.PointVelocity(math.Vec3{X: 1}); !got.ApproxEqual(math.Vec3{Z: -2}, 1e-6) {
		t.Errorf("PointVelocity = %v, want (0,0,-2)", got)
	}
	if got := b.RelativePointVelocity(math.Vec3{X: 1}); !got.ApproxEqual(math.Vec3{Z: -2}, 1e-6) {
		t.Errorf("RelativePointVelocity = %v, want (0,0,-2)", got)
	}
}

func TestAddForceAtPositionSpins(t *testing.T) {
	w := NewWorld(nil)
	b := newBody(t, w, math.Zero, 1)

	b.AddForceAtPosition(math.Vec3{Z: 1}, math.Vec3{X: 1}, physics.ForceModeVelocityChange)
	if !b.Velocity().ApproxEqual(math.Vec3{Z: 1}, 1e-6) {
		t.Errorf("velocity = %v", b.Velocity())
	}
	// (1,0,0) × (0,0,1) = (0,-1,0)
	if !b.AngularVelocity().ApproxEqual(math.Vec3{Y: -1}, 1e-6) {
		t.Errorf("angular velocity = %v, want (0,-1,0)", b.AngularVelocity())
	}
}

func TestExplosionForce(t *testing.T) {
	w := NewWorld(nil)
	b := newBody(t, w, math.Vec3{X: 3}, 1)

	b.AddExplosionForce(10, math.Zero, 1, 0, physics.ForceModeVelocityChange)
	if !b.Velocity().IsZero() {
		t.Errorf("body outside radius moved: %v", b.Velocity())
	}

	b.AddExplosionForce(10, math.Zero, 0, 0, physics.ForceModeVelocityChange)
	if !b.Velocity().ApproxEqual(math.Vec3{X: 10}, 1e-5) {
		t.Errorf("unbounded explosion velocity = %v, want (10,0,0)", b.Velocity())
	}
}

func TestBodyRestsOnFloor(t *testing.T) {
	w := NewWorld(nil)
	mustBox(t, w, "floor", math.Vec3{Y: -1}, math.Vec3{X: 5, Y: 1, Z: 5})
	b := newBody(t, w, math.Vec3{Y: 2}, 1)

	for i := 0; i < 50; i++ {
		w.Simulate(20 * time.Millisecond)
	}
	if y := b.Position().Y; y < 0.4 || y > 0.6 {
		t.Errorf("resting height = %v, want about 0.5", y)
	}
	if vy := b.Velocity().Y; vy < -0.5 {
		t.Errorf("resting velocity = %v, want near zero", vy)
	}
}

func TestIgnoredBodyFallsThrough(t *testing.T) {
	w := NewWorld(nil)
	floor := mustBox(t, w, "floor", math.Vec3{Y: -1}, math.Vec3{X: 5, Y: 1, Z: 5})
	b := newBody(t, w, math.Vec3{Y: 1}, 1)
	w.IgnoreCollision(b.Collider(), floor, true)

	for i := 0; i < 50; i++ {
		w.Simulate(20 * time.Millisecond)
	}
	if y := b.Position().Y; y > 0 {
		t.Errorf("ignored body stopped at %v", y)
	}
}

func TestSweepTestSkipsSelf(t *testing.T) {
	w := NewWorld(nil)
	wall := mustBox(t, w, "wall", math.Vec3{Z: 10}, math.Vec3{X: 2, Y: 2, Z: 1})
	b := newBody(t, w, math.Zero, 1)

	hit, ok := b.SweepTest(math.Forward, 20)
	if !ok || hit.Collider != wall {
		t.Fatalf("SweepTest = %v, %v, want wall", hit.Collider, ok)
	}
	if !near(hit.Distance, 8.5, 2e-2) {
		t.Errorf("distance = %v, want 8.5", hit.Distance)
	}
	if got := b.SweepTestAll(math.Forward, 5); len(got) != 0 {
		t.Errorf("SweepTestAll within 5 = %d hits, want 0", len(got))
	}
}
