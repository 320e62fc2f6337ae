// Package demo builds the reference scene and drives the debug wrappers
// over it, one fixed step and one frame at a time.
package demo

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/internal/config"
	"github.com/Faultbox/physdebug/internal/scene"
	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/debugphysics"
	"github.com/Faultbox/physdebug/pkg/debugrigidbody"
	"github.com/Faultbox/physdebug/pkg/debugvec"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// GhostLayer holds colliders the body passes through.
const GhostLayer = 8

// maxStepsPerFrame bounds catch-up after a long frame.
const maxStepsPerFrame = 5

// explosionPeriod is the number of fixed steps between explosions.
const explosionPeriod = 150

// Scenario owns the reference world and the debug wrappers drawing into
// one sink.
type Scenario struct {
	World *scene.World
	Body  *scene.Body

	sink     debugdraw.Sink
	phys     *debugphysics.Physics
	rb       *debugrigidbody.Debugger
	vec      debugvec.Visualizer
	grid     bool
	features Feature
	log      *zap.Logger

	fixedStep   time.Duration
	accumulator time.Duration
	elapsed     time.Duration
	frameDelta  time.Duration
	steps       int
	frames      int

	colliders map[string]*physics.Collider
	smoothVel math.Vec3
	follower  debugvec.Vector
}

// New builds the scene described by cfg. Lines go to sink.
func New(cfg *config.Config, sink debugdraw.Sink, features Feature, log *zap.Logger) (*Scenario, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scenario{
		World:     scene.NewWorld(log.Named("scene")),
		sink:      sink,
		features:  features,
		log:       log,
		colliders: make(map[string]*physics.Collider),
		follower:  debugvec.Vec(0, 0, 0).At(math.Vec3{X: -6, Y: 0.1, Z: 6}),
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	s.Reconfigure(cfg)
	return s, nil
}

func (s *Scenario) build() error {
	w := s.World
	type spec struct {
		name string
		add  func() (*physics.Collider, error)
	}
	yaw := math.QuatFromAxisAngle(math.Up, math32.Pi/6)
	specs := []spec{
		{"floor", func() (*physics.Collider, error) {
			return w.AddBox("floor", math.Vec3{Y: -0.5}, math.Vec3{X: 10, Y: 0.5, Z: 10}, math.QuatIdentity())
		}},
		{"ball", func() (*physics.Collider, error) {
			return w.AddSphere("ball", math.Vec3{X: -3, Y: 1, Z: 2}, 1)
		}},
		{"crate", func() (*physics.Collider, error) {
			return w.AddBox("crate", math.Vec3{Y: 1, Z: -3}, math.One, yaw)
		}},
		{"pillar", func() (*physics.Collider, error) {
			return w.AddCapsule("pillar", math.Vec3{X: 3, Y: 0.5}, math.Vec3{X: 3, Y: 2.5}, 0.5)
		}},
		{"ghost", func() (*physics.Collider, error) {
			return w.AddBox("ghost", math.Vec3{X: 4, Y: 1, Z: 4}, math.Vec3{X: 0.75, Y: 1, Z: 0.75}, math.QuatIdentity())
		}},
		{"zone", func() (*physics.Collider, error) {
			return w.AddSphere("zone", math.Vec3{X: -4, Y: 1, Z: -4}, 1.25)
		}},
		{"body", func() (*physics.Collider, error) {
			return w.AddSphere("body", math.Vec3{Y: 4}, 0.5)
		}},
	}
	for _, sp := range specs {
		c, err := sp.add()
		if err != nil {
			return fmt.Errorf("building %s: %w", sp.name, err)
		}
		s.colliders[sp.name] = c
	}
	s.colliders["ghost"].Layer = GhostLayer
	s.colliders["zone"].Trigger = true

	body, err := w.AddBody(s.colliders["body"], 2)
	if err != nil {
		return fmt.Errorf("building body: %w", err)
	}
	s.Body = body
	w.IgnoreLayerCollision(physics.DefaultLayer, GhostLayer, true)
	return nil
}

// Reconfigure replaces the wrappers' settings and the world settings.
// Bodies and colliders are kept.
func (s *Scenario) Reconfigure(cfg *config.Config) {
	cfg.ApplyScene(s.World)
	style := cfg.Style()
	s.phys = debugphysics.New(s.World, s.sink, style, cfg.PhysicsSettings(), s.log.Named("physics"))
	s.rb = debugrigidbody.New(s.sink, style, cfg.RigidbodySettings(), s.log.Named("rigidbody"))
	s.vec = debugvec.NewVisualizer(cfg.VectorSettings())
	s.grid = cfg.Draw.Grid
	s.fixedStep = cfg.Scene.FixedStep.Std()
}

// Physics returns the query wrapper.
func (s *Scenario) Physics() *debugphysics.Physics { return s.phys }

// Rigidbody returns the rigid body debugger.
func (s *Scenario) Rigidbody() *debugrigidbody.Debugger { return s.rb }

// Features returns the enabled feature groups.
func (s *Scenario) Features() Feature { return s.features }

// Toggle flips the given feature groups.
func (s *Scenario) Toggle(f Feature) {
	s.features ^= f
	s.log.Info("features changed", zap.Stringer("features", s.features))
}

// Elapsed returns the total frame time seen by Advance.
func (s *Scenario) Elapsed() time.Duration { return s.elapsed }

// Steps returns the number of fixed steps run.
func (s *Scenario) Steps() int { return s.steps }

// Frames returns the number of frames drawn.
func (s *Scenario) Frames() int { return s.frames }

// Collider returns a scene collider by name.
func (s *Scenario) Collider(name string) *physics.Collider { return s.colliders[name] }

// Advance runs as many fixed steps as dt covers, then one frame.
func (s *Scenario) Advance(dt time.Duration) {
	s.elapsed += dt
	s.frameDelta = dt
	if s.fixedStep <= 0 {
		s.Frame()
		return
	}
	s.accumulator += dt
	n := 0
	for s.accumulator >= s.fixedStep && n < maxStepsPerFrame {
		s.FixedStep()
		s.accumulator -= s.fixedStep
		n++
	}
	if n == maxStepsPerFrame && s.accumulator >= s.fixedStep {
		s.log.Debug("dropping simulation time", zap.Duration("behind", s.accumulator))
		s.accumulator = 0
	}
	s.Frame()
}

// FixedStep drives the rigid body and advances the world.
func (s *Scenario) FixedStep() {
	if s.features.Has(FeatureRigidbody) {
		s.rigidbodyStep()
	}
	s.phys.Simulate(s.fixedStep)
	s.steps++
}

func (s *Scenario) rigidbodyStep() {
	b := s.Body
	s.rb.Velocity(b)

	if s.steps%explosionPeriod == 0 {
		at := b.Position().Sub(math.Vec3{X: 0.5, Y: 1, Z: 0.5})
		s.rb.AddExplosionForce(b, 12, at, 4, 0.2, physics.ForceModeImpulse)
	}
	s.rb.AddRelativeTorque(b, math.Vec3{Y: 1}, physics.ForceModeForce)
	s.rb.AddForce(b, s.homing(), physics.ForceModeForce)
	s.rb.PointVelocity(b, b.Position().Add(math.Vec3{X: 0.5}))
	s.rb.SweepTestAll(b, math.Down, 5)
}

// homing pulls the body back towards the middle of the floor, damped by
// its horizontal velocity.
func (s *Scenario) homing() math.Vec3 {
	to := s.Body.Position().Neg()
	to.Y = 0
	v := s.Body.Velocity()
	v.Y = 0
	return to.Scale(3).Sub(v.Scale(2))
}

// Frame issues the per-frame queries.
func (s *Scenario) Frame() {
	t := float32(s.elapsed.Seconds())
	q := physics.DefaultQuery()
	if s.grid {
		s.phys.Drawer().Grid(math.Zero, 10, 1, debugdraw.Gray.WithAlpha(0.35))
	}

	if s.features.Has(FeatureRaycast) {
		sin, cos := math32.Sincos(t * 0.8)
		dir := math.Vec3{X: cos, Y: -0.1, Z: sin}
		s.phys.RaycastAll(physics.Ray{Origin: math.Vec3{Y: 1}, Direction: dir}, q.WithDistance(8))
		s.phys.Linecast(math.Vec3{X: -8, Y: 0.5, Z: 2}, math.Vec3{X: 8, Y: 0.5 + math32.Sin(t), Z: 2}, q)
	}
	if s.features.Has(FeatureSphereCast) {
		origin := math.Vec3{X: -7, Y: 1, Z: -1 + 3*math32.Sin(t*0.5)}
		s.phys.SphereCastHit(origin, 0.5, math.Right, q.WithDistance(14))
	}
	if s.features.Has(FeatureBoxCast) {
		orient := math.QuatFromAxisAngle(math.Up, t)
		s.phys.BoxCastAll(math.Vec3{X: -1, Y: 1, Z: -8}, math.Vec3{X: 0.4, Y: 0.4, Z: 0.4}, math.Forward, orient, q.WithDistance(14))
	}
	if s.features.Has(FeatureCapsuleCast) {
		x := 3 + 2*math32.Sin(t*0.7)
		s.phys.CapsuleCastAll(math.Vec3{X: x, Y: 0.5, Z: 8}, math.Vec3{X: x, Y: 1.5, Z: 8}, 0.3, math.Back, q.WithDistance(16))
	}
	if s.features.Has(FeatureOverlap) {
		sin, cos := math32.Sincos(t * 0.6)
		center := math.Vec3{X: 4 * cos, Y: 1, Z: 4 * sin}
		overlap := physics.DefaultOverlapQuery()
		s.phys.OverlapSphere(center, 1.5, overlap)
		s.phys.CheckBox(center.Add(math.Vec3{Y: 2}), math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, math.QuatIdentity(), overlap)
		s.phys.CheckCapsule(math.Vec3{X: -4, Y: 0.5, Z: -4}, math.Vec3{X: -4 + cos, Y: 2, Z: -4}, 0.25, overlap)
	}
	if s.features.Has(FeatureSolver) {
		ball := s.colliders["ball"]
		probe := math.Vec3{X: -3 + 2.5*math32.Cos(t), Y: 1.5, Z: 2 + 2.5*math32.Sin(t)}
		s.phys.ClosestPoint(probe, ball, ball.Position(), ball.Rotation())
		body := s.Body.Collider()
		floor := s.colliders["floor"]
		s.phys.ComputePenetration(body, s.Body.Position(), s.Body.Rotation(), floor, floor.Position(), floor.Rotation())
	}
	if s.features.Has(FeatureVectors) {
		s.vectors(t)
	}
	s.frames++
}

func (s *Scenario) vectors(t float32) {
	origin := math.Vec3{X: -6, Y: 0.1, Z: 6}
	sin, cos := math32.Sincos(t)
	a := debugvec.Vec(cos, 1, sin).At(origin)
	b := debugvec.Of(math.Right).At(origin)

	_, lines := s.vec.Add(a, b)
	s.vec.Draw(s.sink, lines)
	_, lines = s.vec.Cross(a, b)
	s.vec.Draw(s.sink, lines)
	_, lines = s.vec.Reflect(debugvec.Vec(1, -1, 0).At(origin.Add(math.Vec3{X: -1, Y: 1})), debugvec.Of(math.Up).At(origin))
	s.vec.Draw(s.sink, lines)
	_, lines = s.vec.Angle(a, b)
	s.vec.Draw(s.sink, lines)

	target := debugvec.Vec(2*cos, 0.5, 2*sin).At(origin)
	dt := float32(s.frameDelta.Seconds())
	if dt <= 0 {
		dt = float32(s.fixedStep.Seconds())
	}
	s.follower, lines = s.vec.SmoothDamp(s.follower, target, &s.smoothVel, 0.5, math32.Inf(1), dt)
	s.follower.Origin = origin
	s.vec.Draw(s.sink, lines)
}

// CastFrom raycasts along ray with the default query and draws the result.
func (s *Scenario) CastFrom(ray physics.Ray) []physics.Hit {
	hits := s.phys.RaycastAll(ray, physics.DefaultQuery().WithDistance(scene.MaxCastDistance))
	s.log.Debug("pick", zap.Int("hits", len(hits)))
	return hits
}
