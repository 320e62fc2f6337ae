package demo

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/physdebug/internal/config"
	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

func newScenario(t *testing.T, features Feature) (*Scenario, *debugdraw.Recorder) {
	t.Helper()
	cfg := config.Default()
	cfg.Draw.Grid = false
	rec := &debugdraw.Recorder{}
	s, err := New(cfg, rec, features, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, rec
}

func TestNewBuildsScene(t *testing.T) {
	s, _ := newScenario(t, 0)

	for _, name := range []string{"floor", "ball", "crate", "pillar", "ghost", "zone", "body"} {
		if s.Collider(name) == nil {
			t.Errorf("collider %q missing", name)
		}
	}
	if got := s.Collider("ghost").Layer; got != GhostLayer {
		t.Errorf("ghost layer = %d, want %d", got, GhostLayer)
	}
	if !s.Collider("zone").Trigger {
		t.Error("zone should be a trigger")
	}
	if s.Body.Mass() != 2 {
		t.Errorf("body mass = %v, want 2", s.Body.Mass())
	}
	if !s.World.GetIgnoreLayerCollision(physics.DefaultLayer, GhostLayer) {
		t.Error("ghost layer should be ignored by the default layer")
	}
}

func TestAdvanceRunsFixedSteps(t *testing.T) {
	s, _ := newScenario(t, 0)

	s.Advance(50 * time.Millisecond)
	if s.Steps() != 2 {
		t.Errorf("steps after 50ms = %d, want 2", s.Steps())
	}
	s.Advance(10 * time.Millisecond)
	if s.Steps() != 3 {
		t.Errorf("steps after 60ms = %d, want 3", s.Steps())
	}
	if s.Frames() != 2 {
		t.Errorf("frames = %d, want 2", s.Frames())
	}
	if s.Elapsed() != 60*time.Millisecond {
		t.Errorf("elapsed = %v", s.Elapsed())
	}
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Default()
	s, err := New(cfg, debugdraw.Discard, 0, zap.New(core))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s.Advance(time.Second)
	if s.Steps() != maxStepsPerFrame {
		t.Errorf("steps = %d, want %d", s.Steps(), maxStepsPerFrame)
	}
	if logs.FilterMessage("dropping simulation time").Len() != 1 {
		t.Error("expected a dropped time log")
	}

	// The backlog is gone; a single step's worth runs one step.
	s.Advance(cfg.Scene.FixedStep.Std())
	if s.Steps() != maxStepsPerFrame+1 {
		t.Errorf("steps = %d, want %d", s.Steps(), maxStepsPerFrame+1)
	}
}

func TestFeaturesGateDrawing(t *testing.T) {
	tests := []struct {
		name     string
		features Feature
		wantAny  bool
	}{
		{"none", 0, false},
		{"raycast", FeatureRaycast, true},
		{"spherecast", FeatureSphereCast, true},
		{"boxcast", FeatureBoxCast, true},
		{"capsulecast", FeatureCapsuleCast, true},
		{"overlap", FeatureOverlap, true},
		{"solver", FeatureSolver, true},
		{"vectors", FeatureVectors, true},
		// Rigid body drawing happens in fixed steps only.
		{"rigidbody frame", FeatureRigidbody, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newScenario(t, tt.features)
			s.Frame()
			if got := rec.Len() > 0; got != tt.wantAny {
				t.Errorf("drew %d lines, want any = %v", rec.Len(), tt.wantAny)
			}
		})
	}
}

func TestGridDrawnWhenEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.Draw.Grid = true
	rec := &debugdraw.Recorder{}
	s, err := New(cfg, rec, 0, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Frame()
	if rec.Len() == 0 {
		t.Error("grid not drawn")
	}
}

func TestRigidbodyStepExplodesPeriodically(t *testing.T) {
	s, rec := newScenario(t, FeatureRigidbody)
	impulse := s.Rigidbody().ForceModeColor(physics.ForceModeImpulse)

	s.FixedStep()
	if len(rec.WithColor(impulse)) == 0 {
		t.Fatal("first step should draw the explosion impulse")
	}
	if s.Body.Velocity().IsZero() {
		t.Error("explosion should move the body")
	}

	rec.Reset()
	s.FixedStep()
	if n := len(rec.WithColor(impulse)); n != 0 {
		t.Errorf("second step drew %d impulse lines, want 0", n)
	}
	if rec.Len() == 0 {
		t.Error("second step should still draw velocity, forces and the sweep")
	}
}

func TestBodyStaysOnFloor(t *testing.T) {
	s, _ := newScenario(t, FeatureRigidbody)
	for i := 0; i < 500; i++ {
		s.Advance(20 * time.Millisecond)
	}
	p := s.Body.Position()
	if p.Y < 0 {
		t.Errorf("body fell through the floor: %v", p)
	}
	if p.Y > 20 {
		t.Errorf("body escaped upwards: %v", p)
	}
}

func TestToggle(t *testing.T) {
	s, _ := newScenario(t, DefaultFeatures)
	s.Toggle(FeatureRaycast)
	if s.Features().Has(FeatureRaycast) {
		t.Error("raycast still enabled")
	}
	s.Toggle(FeatureRaycast | FeatureVectors)
	if !s.Features().Has(FeatureRaycast | FeatureVectors) {
		t.Errorf("features = %v", s.Features())
	}
}

func TestReconfigure(t *testing.T) {
	s, _ := newScenario(t, 0)
	cfg := config.Default()
	cfg.Scene.Gravity = -1
	cfg.Physics.HitColor = debugdraw.Cyan
	s.Reconfigure(cfg)

	if s.World.Gravity != (math.Vec3{Y: -1}) {
		t.Errorf("gravity = %v", s.World.Gravity)
	}
	if s.Physics().Settings().HitColor != debugdraw.Cyan {
		t.Error("physics settings not replaced")
	}
	if s.Collider("ball") == nil || s.Body == nil {
		t.Error("scene lost on reconfigure")
	}
}

func TestCastFrom(t *testing.T) {
	s, rec := newScenario(t, 0)
	hits := s.CastFrom(physics.Ray{Origin: math.Vec3{X: -3, Y: 5, Z: 2}, Direction: math.Down})
	if len(hits) < 2 {
		t.Fatalf("got %d hits, want the ball and the floor", len(hits))
	}
	if len(rec.WithColor(s.Physics().Settings().HitColor)) == 0 {
		t.Error("hits not drawn")
	}
}
