package debugphysics

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

// fakeEngine answers every query with canned results and records the last
// query it saw.
type fakeEngine struct {
	hit       physics.Hit
	ok        bool
	hits      []physics.Hit
	colliders []*physics.Collider

	closest  math.Vec3
	penDir   math.Vec3
	penDist  float32
	penOK    bool
	ignored  bool
	layerOff bool
	stepped  time.Duration

	lastQuery physics.Query
	lastRay   physics.Ray
}

func (f *fakeEngine) Raycast(ray physics.Ray, q physics.Query) (physics.Hit, bool) {
	f.lastRay, f.lastQuery = ray, q
	return f.hit, f.ok
}

func (f *fakeEngine) RaycastAll(ray physics.Ray, q physics.Query) []physics.Hit {
	f.lastRay, f.lastQuery = ray, q
	return f.hits
}

func (f *fakeEngine) SphereCast(_ math.Vec3, _ float32, _ math.Vec3, q physics.Query) (physics.Hit, bool) {
	f.lastQuery = q
	return f.hit, f.ok
}

func (f *fakeEngine) SphereCastAll(_ math.Vec3, _ float32, _ math.Vec3, q physics.Query) []physics.Hit {
	f.lastQuery = q
	return f.hits
}

func (f *fakeEngine) BoxCast(_, _, _ math.Vec3, _ math.Quat, q physics.Query) (physics.Hit, bool) {
	f.lastQuery = q
	return f.hit, f.ok
}

func (f *fakeEngine) BoxCastAll(_, _, _ math.Vec3, _ math.Quat, q physics.Query) []physics.Hit {
	f.lastQuery = q
	return f.hits
}

func (f *fakeEngine) CapsuleCast(_, _ math.Vec3, _ float32, _ math.Vec3, q physics.Query) (physics.Hit, bool) {
	f.lastQuery = q
	return f.hit, f.ok
}

func (f *fakeEngine) CapsuleCastAll(_, _ math.Vec3, _ float32, _ math.Vec3, q physics.Query) []physics.Hit {
	f.lastQuery = q
	return f.hits
}

func (f *fakeEngine) OverlapSphere(math.Vec3, float32, physics.Query) []*physics.Collider {
	return f.colliders
}

func (f *fakeEngine) OverlapBox(math.Vec3, math.Vec3, math.Quat, physics.Query) []*physics.Collider {
	return f.colliders
}

func (f *fakeEngine) OverlapCapsule(math.Vec3, math.Vec3, float32, physics.Query) []*physics.Collider {
	return f.colliders
}

func (f *fakeEngine) CheckSphere(math.Vec3, float32, physics.Query) bool { return f.ok }

func (f *fakeEngine) CheckBox(math.Vec3, math.Vec3, math.Quat, physics.Query) bool { return f.ok }

func (f *fakeEngine) CheckCapsule(math.Vec3, math.Vec3, float32, physics.Query) bool { return f.ok }

func (f *fakeEngine) ClosestPoint(math.Vec3, *physics.Collider, math.Vec3, math.Quat) math.Vec3 {
	return f.closest
}

func (f *fakeEngine) ComputePenetration(*physics.Collider, math.Vec3, math.Quat, *physics.Collider, math.Vec3, math.Quat) (math.Vec3, float32, bool) {
	return f.penDir, f.penDist, f.penOK
}

func (f *fakeEngine) IgnoreCollision(_, _ *physics.Collider, ignore bool) { f.ignored = ignore }

func (f *fakeEngine) IgnoreLayerCollision(_, _ int, ignore bool) { f.layerOff = ignore }

func (f *fakeEngine) GetIgnoreLayerCollision(int, int) bool { return f.layerOff }

func (f *fakeEngine) Simulate(step time.Duration) { f.stepped += step }

var _ physics.Engine = (*fakeEngine)(nil)

func newTestPhysics(f *fakeEngine) (*Physics, *debugdraw.Recorder) {
	rec := &debugdraw.Recorder{}
	return New(f, rec, debugdraw.DefaultStyle(), DefaultSettings(), nil), rec
}

var (
	green = DefaultSettings().HitColor
	red   = DefaultSettings().NoHitColor
	blue  = DefaultSettings().HitNormalColor
)

func sphereCollider(center math.Vec3) *physics.Collider {
	return physics.NewCollider("ball", wireframe.SphereShape(center, 1))
}

func hitAt(z float32) physics.Hit {
	return physics.Hit{
		Point:    math.Vec3{Z: z},
		Normal:   math.Back,
		Distance: z,
		Collider: sphereCollider(math.Vec3{Z: z + 1}),
	}
}

// Segment counts at the default segment count of 4.
const (
	sphereLines      = 36
	sphereSweepLines = 2*sphereLines + 4
	boxLines         = 12
	boxSweepLines    = 32
	capsuleLines     = 4 + 16*3
	capsuleSweep     = 2*capsuleLines + 4
	hitDetailLines   = 3 + 1
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.HitColor != debugdraw.Green || s.NoHitColor != debugdraw.Red {
		t.Errorf("colors = %v / %v", s.HitColor, s.NoHitColor)
	}
	if s.Duration != debugdraw.MinDuration {
		t.Errorf("Duration = %v, want %v", s.Duration, debugdraw.MinDuration)
	}
	if s.MaxDrawLength != 100 {
		t.Errorf("MaxDrawLength = %v, want 100", s.MaxDrawLength)
	}
}

func TestRaycast(t *testing.T) {
	ray := physics.Ray{Direction: math.Vec3{Z: 2}}

	tests := []struct {
		name  string
		ok    bool
		query physics.Query
		color debugdraw.Color
		end   math.Vec3
	}{
		{"hit infinite", true, physics.DefaultQuery(), green, math.Vec3{Z: 100}},
		{"miss infinite", false, physics.DefaultQuery(), red, math.Vec3{Z: 100}},
		{"miss short", false, physics.DefaultQuery().WithDistance(5), red, math.Vec3{Z: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec := newTestPhysics(&fakeEngine{ok: tt.ok})
			if got := p.Raycast(ray, tt.query); got != tt.ok {
				t.Errorf("Raycast = %v, want %v", got, tt.ok)
			}
			if rec.Len() != 1 {
				t.Fatalf("lines = %d, want 1", rec.Len())
			}
			l := rec.Lines[0]
			if l.Color != tt.color {
				t.Errorf("color = %v, want %v", l.Color, tt.color)
			}
			if !l.End.ApproxEqual(tt.end, 1e-4) {
				t.Errorf("end = %v, want %v", l.End, tt.end)
			}
		})
	}
}

func TestRaycastHitDetail(t *testing.T) {
	f := &fakeEngine{ok: true, hit: hitAt(4)}
	p, rec := newTestPhysics(f)

	hit, ok := p.RaycastHit(physics.Ray{Direction: math.Forward}, physics.DefaultQuery())
	if !ok || hit.Distance != 4 {
		t.Fatalf("RaycastHit = %+v, %v", hit, ok)
	}
	if rec.Len() != 1+hitDetailLines {
		t.Fatalf("lines = %d, want %d", rec.Len(), 1+hitDetailLines)
	}
	if rec.Lines[0].End != hit.Point {
		t.Errorf("ray ends at %v, want hit point %v", rec.Lines[0].End, hit.Point)
	}
	normals := rec.WithColor(blue)
	if len(normals) != 1 || normals[0].End != hit.Point.Add(hit.Normal) {
		t.Errorf("normal lines = %+v", normals)
	}

	for _, l := range rec.Lines {
		if l.Duration != debugdraw.MinDuration || !l.DepthTest {
			t.Errorf("line attributes = %v, %v", l.Duration, l.DepthTest)
		}
	}
}

func TestRaycastHitDetailDisabled(t *testing.T) {
	s := DefaultSettings()
	s.DrawHitPoints = false
	s.DrawHitNormals = false
	rec := &debugdraw.Recorder{}
	p := New(&fakeEngine{ok: true, hit: hitAt(4)}, rec, debugdraw.DefaultStyle(), s, nil)

	p.RaycastHit(physics.Ray{Direction: math.Forward}, physics.DefaultQuery())
	if rec.Len() != 1 {
		t.Errorf("lines = %d, want 1", rec.Len())
	}
}

func TestRaycastAllRemainder(t *testing.T) {
	tests := []struct {
		name      string
		hits      []physics.Hit
		query     physics.Query
		remainder bool
		total     int
	}{
		{"no hits", nil, physics.DefaultQuery(), true, 1},
		{"two hits", []physics.Hit{hitAt(9), hitAt(4)}, physics.DefaultQuery(), true, 1 + 2*(1+hitDetailLines)},
		{"hit at max", []physics.Hit{hitAt(10)}, physics.DefaultQuery().WithDistance(10), false, 1 + hitDetailLines},
		{"invalid hits skipped", []physics.Hit{{Distance: 3}, hitAt(4)}, physics.DefaultQuery(), true, 1 + 1 + hitDetailLines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec := newTestPhysics(&fakeEngine{hits: tt.hits})
			got := p.RaycastAll(physics.Ray{Direction: math.Forward}, tt.query)
			if len(got) != len(tt.hits) {
				t.Errorf("RaycastAll returned %d hits, want %d", len(got), len(tt.hits))
			}
			if rec.Len() != tt.total {
				t.Errorf("lines = %d, want %d", rec.Len(), tt.total)
			}
			reds := rec.WithColor(red)
			if (len(reds) == 1) != tt.remainder {
				t.Errorf("remainder lines = %d, want present %v", len(reds), tt.remainder)
			}
		})
	}
}

func TestRaycastAllRemainderStartsAtFurthestHit(t *testing.T) {
	p, rec := newTestPhysics(&fakeEngine{hits: []physics.Hit{hitAt(4), hitAt(9)}})
	p.RaycastAll(physics.Ray{Direction: math.Forward}, physics.DefaultQuery().WithDistance(20))

	reds := rec.WithColor(red)
	if len(reds) != 1 {
		t.Fatalf("remainder lines = %d, want 1", len(reds))
	}
	if !reds[0].Start.ApproxEqual(math.Vec3{Z: 9}, 1e-5) || !reds[0].End.ApproxEqual(math.Vec3{Z: 20}, 1e-5) {
		t.Errorf("remainder = %v -> %v, want (0,0,9) -> (0,0,20)", reds[0].Start, reds[0].End)
	}
}

func TestRaycastNonAlloc(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := &debugdraw.Recorder{}
	f := &fakeEngine{hits: []physics.Hit{hitAt(9), hitAt(2), hitAt(5)}}
	p := New(f, rec, debugdraw.DefaultStyle(), DefaultSettings(), zap.New(core))

	results := make([]physics.Hit, 2)
	n := p.RaycastNonAlloc(physics.Ray{Direction: math.Forward}, results, physics.DefaultQuery())
	if n != 2 {
		t.Fatalf("RaycastNonAlloc = %d, want 2", n)
	}
	if results[0].Distance != 2 || results[1].Distance != 5 {
		t.Errorf("results = %v, %v, want nearest two sorted", results[0].Distance, results[1].Distance)
	}
	if rec.Len() != 1+2*(1+hitDetailLines) {
		t.Errorf("lines = %d", rec.Len())
	}
	if logs.FilterMessage("results buffer full").Len() != 1 {
		t.Error("expected a buffer-full debug log")
	}

	rec.Reset()
	f.hits = nil
	if n := p.RaycastNonAlloc(physics.Ray{Direction: math.Forward}, results, physics.DefaultQuery()); n != 0 {
		t.Errorf("RaycastNonAlloc without hits = %d", n)
	}
	if len(rec.WithColor(red)) != 1 {
		t.Errorf("miss should draw one red ray, got %d lines", rec.Len())
	}
}

func TestLinecast(t *testing.T) {
	f := &fakeEngine{ok: true, hit: hitAt(3)}
	p, rec := newTestPhysics(f)
	start, end := math.Zero, math.Vec3{Z: 8}

	if !p.Linecast(start, end, physics.DefaultQuery()) {
		t.Fatal("Linecast should report the hit")
	}
	if f.lastQuery.MaxDistance != 8 {
		t.Errorf("query distance = %v, want 8", f.lastQuery.MaxDistance)
	}
	if rec.Len() != 1 || rec.Lines[0].End != end || rec.Lines[0].Color != green {
		t.Errorf("Linecast lines = %+v", rec.Lines)
	}

	rec.Reset()
	hit, ok := p.LinecastHit(start, end, physics.DefaultQuery())
	if !ok || rec.Lines[0].End != hit.Point {
		t.Errorf("LinecastHit should stop at the hit point, got %+v", rec.Lines[0])
	}

	rec.Reset()
	f.ok = false
	if _, ok := p.LinecastHit(start, end, physics.DefaultQuery()); ok {
		t.Error("LinecastHit should miss")
	}
	if rec.Len() != 1 || rec.Lines[0].Color != red || rec.Lines[0].End != end {
		t.Errorf("miss lines = %+v", rec.Lines)
	}
}

func TestSphereCast(t *testing.T) {
	dir := math.Forward
	sentinel := physics.OverlapHit(sphereCollider(math.Zero), dir)

	tests := []struct {
		name  string
		run   func(p *Physics) bool
		lines int
		reds  int
	}{
		{"miss", func(p *Physics) bool {
			return p.SphereCast(math.Zero, 0.5, dir, physics.DefaultQuery())
		}, sphereSweepLines, sphereSweepLines},
		{"all without hits draws miss color", func(p *Physics) bool {
			return len(p.SphereCastAll(math.Zero, 0.5, dir, physics.DefaultQuery())) > 0
		}, sphereSweepLines, sphereSweepLines},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec := newTestPhysics(&fakeEngine{})
			if tt.run(p) {
				t.Error("unexpected hit")
			}
			if rec.Len() != tt.lines || len(rec.WithColor(red)) != tt.reds {
				t.Errorf("lines = %d (red %d), want %d (red %d)", rec.Len(), len(rec.WithColor(red)), tt.lines, tt.reds)
			}
		})
	}

	t.Run("started overlapping", func(t *testing.T) {
		p, rec := newTestPhysics(&fakeEngine{ok: true, hit: sentinel})
		if _, ok := p.SphereCastHit(math.Vec3{X: 3}, 0.5, dir, physics.DefaultQuery()); !ok {
			t.Fatal("expected hit")
		}
		if rec.Len() != sphereLines+hitDetailLines {
			t.Errorf("lines = %d, want %d", rec.Len(), sphereLines+hitDetailLines)
		}
		normals := rec.WithColor(blue)
		if len(normals) != 1 || normals[0].Start != (math.Vec3{X: 3}) {
			t.Errorf("normal should start at the cast origin, got %+v", normals)
		}
	})

	t.Run("hit", func(t *testing.T) {
		p, rec := newTestPhysics(&fakeEngine{ok: true, hit: hitAt(6)})
		p.SphereCastHit(math.Zero, 0.5, dir, physics.DefaultQuery())
		if rec.Len() != sphereSweepLines+hitDetailLines {
			t.Errorf("lines = %d, want %d", rec.Len(), sphereSweepLines+hitDetailLines)
		}
		if len(rec.WithColor(red)) != 0 {
			t.Error("hit drew miss lines")
		}
	})
}

func TestSphereCastAllRemainder(t *testing.T) {
	p, rec := newTestPhysics(&fakeEngine{hits: []physics.Hit{hitAt(6)}})
	p.SphereCastAll(math.Zero, 0.5, math.Forward, physics.DefaultQuery().WithDistance(20))

	if got := len(rec.WithColor(red)); got != sphereSweepLines {
		t.Errorf("remainder lines = %d, want %d", got, sphereSweepLines)
	}
	if first := rec.Lines[sphereLines]; first.Color != red {
		t.Fatalf("remainder should be drawn first")
	}
	if rec.Len() != 2*sphereSweepLines+hitDetailLines {
		t.Errorf("lines = %d", rec.Len())
	}
}

func TestBoxCast(t *testing.T) {
	half := math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}

	t.Run("hit with remainder", func(t *testing.T) {
		h := hitAt(5.5)
		h.Distance = 5
		p, rec := newTestPhysics(&fakeEngine{hits: []physics.Hit{h}})
		p.BoxCastAll(math.Zero, half, math.Forward, math.QuatIdentity(), physics.DefaultQuery().WithDistance(10))
		if got := len(rec.WithColor(red)); got != boxSweepLines {
			t.Errorf("remainder lines = %d, want %d", got, boxSweepLines)
		}
		if rec.Len() != 2*boxSweepLines+hitDetailLines {
			t.Errorf("lines = %d", rec.Len())
		}
	})

	t.Run("hit past capped length has no remainder", func(t *testing.T) {
		settings := DefaultSettings()
		settings.MaxDrawLength = 5
		rec := &debugdraw.Recorder{}
		p := New(&fakeEngine{hits: []physics.Hit{hitAt(5.2)}}, rec, debugdraw.DefaultStyle(), settings, nil)
		p.BoxCastAll(math.Zero, half, math.Forward, math.QuatIdentity(), physics.DefaultQuery().WithDistance(10))
		if got := len(rec.WithColor(red)); got != 0 {
			t.Errorf("remainder lines = %d, want 0", got)
		}
		if rec.Len() != boxSweepLines+hitDetailLines {
			t.Errorf("lines = %d, want %d", rec.Len(), boxSweepLines+hitDetailLines)
		}
	})

	t.Run("started overlapping", func(t *testing.T) {
		sentinel := physics.OverlapHit(sphereCollider(math.Zero), math.Forward)
		p, rec := newTestPhysics(&fakeEngine{ok: true, hit: sentinel})
		p.BoxCastHit(math.Zero, half, math.Forward, math.QuatIdentity(), physics.DefaultQuery())
		if rec.Len() != boxLines+hitDetailLines {
			t.Errorf("lines = %d, want %d", rec.Len(), boxLines+hitDetailLines)
		}
	})

	t.Run("check", func(t *testing.T) {
		p, rec := newTestPhysics(&fakeEngine{ok: true})
		if !p.CheckBox(math.Zero, half, math.QuatIdentity(), physics.DefaultQuery()) {
			t.Error("CheckBox should pass the engine result through")
		}
		if len(rec.WithColor(green)) != boxLines {
			t.Errorf("green lines = %d, want %d", len(rec.WithColor(green)), boxLines)
		}
	})
}

func TestCapsuleCastAll(t *testing.T) {
	p1, p2 := math.Vec3{Y: -0.5}, math.Vec3{Y: 0.5}

	t.Run("hit beyond max distance has no remainder", func(t *testing.T) {
		p, rec := newTestPhysics(&fakeEngine{hits: []physics.Hit{hitAt(20)}})
		p.CapsuleCastAll(p1, p2, 0.5, math.Forward, physics.DefaultQuery().WithDistance(10))
		if got := len(rec.WithColor(red)); got != 0 {
			t.Errorf("remainder lines = %d, want 0", got)
		}
		if rec.Len() != capsuleSweep+hitDetailLines {
			t.Errorf("lines = %d, want %d", rec.Len(), capsuleSweep+hitDetailLines)
		}
	})

	t.Run("hit past capped length has no remainder", func(t *testing.T) {
		settings := DefaultSettings()
		settings.MaxDrawLength = 5
		rec := &debugdraw.Recorder{}
		p := New(&fakeEngine{hits: []physics.Hit{hitAt(5.2)}}, rec, debugdraw.DefaultStyle(), settings, nil)
		p.CapsuleCastAll(p1, p2, 0.5, math.Forward, physics.DefaultQuery().WithDistance(10))
		if got := len(rec.WithColor(red)); got != 0 {
			t.Errorf("remainder lines = %d, want 0", got)
		}
	})

	t.Run("non alloc", func(t *testing.T) {
		p, rec := newTestPhysics(&fakeEngine{hits: []physics.Hit{hitAt(3), hitAt(6)}})
		results := make([]physics.Hit, 4)
		if n := p.CapsuleCastNonAlloc(p1, p2, 0.5, math.Forward, results, physics.DefaultQuery().WithDistance(10)); n != 2 {
			t.Errorf("CapsuleCastNonAlloc = %d, want 2", n)
		}
		if got := len(rec.WithColor(red)); got != capsuleSweep {
			t.Errorf("remainder lines = %d, want %d", got, capsuleSweep)
		}
	})

	t.Run("miss", func(t *testing.T) {
		p, rec := newTestPhysics(&fakeEngine{})
		if p.CapsuleCast(p1, p2, 0.5, math.Forward, physics.DefaultQuery()) {
			t.Error("unexpected hit")
		}
		if got := len(rec.WithColor(red)); got != capsuleSweep {
			t.Errorf("red lines = %d, want %d", got, capsuleSweep)
		}
	})
}

func TestOverlaps(t *testing.T) {
	found := []*physics.Collider{sphereCollider(math.Vec3{X: 1}), sphereCollider(math.Vec3{X: -1})}

	tests := []struct {
		name      string
		colliders []*physics.Collider
		draw      bool
		run       func(p *Physics) int
		count     int
		greens    int
		reds      int
	}{
		{"sphere none", nil, true, func(p *Physics) int {
			return len(p.OverlapSphere(math.Zero, 1, physics.DefaultOverlapQuery()))
		}, 0, 0, sphereLines},
		{"sphere two", found, true, func(p *Physics) int {
			return len(p.OverlapSphere(math.Zero, 1, physics.DefaultOverlapQuery()))
		}, 2, 3 * sphereLines, 0},
		{"sphere two without colliders", found, false, func(p *Physics) int {
			return len(p.OverlapSphere(math.Zero, 1, physics.DefaultOverlapQuery()))
		}, 2, sphereLines, 0},
		{"box non alloc capped", found, true, func(p *Physics) int {
			return p.OverlapBoxNonAlloc(math.Zero, math.One, math.QuatIdentity(), make([]*physics.Collider, 1), physics.DefaultOverlapQuery())
		}, 1, sphereLines + boxLines, 0},
		{"capsule", found[:1], true, func(p *Physics) int {
			return len(p.OverlapCapsule(math.Zero, math.Up, 0.5, physics.DefaultOverlapQuery()))
		}, 1, sphereLines + capsuleLines, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.DrawOverlapColliders = tt.draw
			rec := &debugdraw.Recorder{}
			p := New(&fakeEngine{colliders: tt.colliders}, rec, debugdraw.DefaultStyle(), s, nil)

			if n := tt.run(p); n != tt.count {
				t.Errorf("count = %d, want %d", n, tt.count)
			}
			if got := len(rec.WithColor(green)); got != tt.greens {
				t.Errorf("green lines = %d, want %d", got, tt.greens)
			}
			if got := len(rec.WithColor(red)); got != tt.reds {
				t.Errorf("red lines = %d, want %d", got, tt.reds)
			}
		})
	}
}

func TestIgnoreCollision(t *testing.T) {
	f := &fakeEngine{}
	p, rec := newTestPhysics(f)
	a, b := sphereCollider(math.Zero), sphereCollider(math.Vec3{X: 3})

	p.IgnoreCollision(a, b, true)
	if !f.ignored {
		t.Error("engine not told to ignore")
	}
	if got := len(rec.WithColor(red)); got != 2*sphereLines {
		t.Errorf("red lines = %d, want %d", got, 2*sphereLines)
	}
	if rec.Lines[0].Duration != DefaultSettings().IgnoreCollisionDuration {
		t.Errorf("duration = %v, want %v", rec.Lines[0].Duration, DefaultSettings().IgnoreCollisionDuration)
	}

	rec.Reset()
	p.IgnoreCollision(a, b, false)
	if got := len(rec.WithColor(green)); got != 2*sphereLines {
		t.Errorf("green lines = %d, want %d", got, 2*sphereLines)
	}
}

func TestLayerPassThrough(t *testing.T) {
	f := &fakeEngine{}
	p, rec := newTestPhysics(f)

	p.IgnoreLayerCollision(1, 2, true)
	if !p.GetIgnoreLayerCollision(1, 2) {
		t.Error("layer ignore not forwarded")
	}
	p.Simulate(20 * time.Millisecond)
	if f.stepped != 20*time.Millisecond {
		t.Errorf("stepped = %v", f.stepped)
	}
	if rec.Len() != 0 {
		t.Errorf("pass-through calls drew %d lines", rec.Len())
	}
}

func TestComputePenetration(t *testing.T) {
	a, b := sphereCollider(math.Zero), sphereCollider(math.Vec3{X: 1})
	posA, posB := math.Zero, math.Vec3{X: 1.5}

	t.Run("overlapping", func(t *testing.T) {
		p, rec := newTestPhysics(&fakeEngine{penOK: true, penDir: math.Left, penDist: 0.5})
		dir, dist, ok := p.ComputePenetration(a, posA, math.QuatIdentity(), b, posB, math.QuatIdentity())
		if !ok || dir != math.Left || dist != 0.5 {
			t.Fatalf("ComputePenetration = %v, %v, %v", dir, dist, ok)
		}
		if rec.Len() != 2*sphereLines+1 {
			t.Fatalf("lines = %d, want %d", rec.Len(), 2*sphereLines+1)
		}
		last := rec.Lines[rec.Len()-1]
		if last.Start != posA || !last.End.ApproxEqual(math.Vec3{X: -0.5}, 1e-6) {
			t.Errorf("separation line = %v -> %v", last.Start, last.End)
		}
		// b is drawn at its posed position, not its registered one.
		for _, l := range rec.Lines[sphereLines : 2*sphereLines] {
			if d := l.Start.Distance(posB); d < 0.999 || d > 1.001 {
				t.Fatalf("b line starts %v from posB, want 1", d)
			}
		}
	})

	t.Run("apart", func(t *testing.T) {
		p, rec := newTestPhysics(&fakeEngine{})
		if _, _, ok := p.ComputePenetration(a, posA, math.QuatIdentity(), b, math.Vec3{X: 5}, math.QuatIdentity()); ok {
			t.Fatal("unexpected penetration")
		}
		last := rec.Lines[rec.Len()-1]
		if last.Color != red || last.End != (math.Vec3{X: 5}) {
			t.Errorf("apart line = %+v", last)
		}
	})
}

func TestClosestPoint(t *testing.T) {
	f := &fakeEngine{closest: math.Vec3{X: 1}}
	p, rec := newTestPhysics(f)
	c := sphereCollider(math.Zero)

	if got := p.ClosestPoint(math.Vec3{X: 5}, c, math.Zero, math.QuatIdentity()); got != f.closest {
		t.Errorf("ClosestPoint = %v, want %v", got, f.closest)
	}
	if rec.Len() != 3+sphereLines {
		t.Errorf("lines = %d, want %d", rec.Len(), 3+sphereLines)
	}
}

func TestSettingsOverrideStyle(t *testing.T) {
	s := DefaultSettings()
	s.Duration = 2 * time.Second
	s.DepthTest = false
	rec := &debugdraw.Recorder{}
	p := New(&fakeEngine{}, rec, debugdraw.DefaultStyle(), s, nil)

	p.Raycast(physics.Ray{Direction: math.Forward}, physics.DefaultQuery())
	if l := rec.Lines[0]; l.Duration != 2*time.Second || l.DepthTest {
		t.Errorf("line = %+v", l)
	}
	if p.Drawer().Style().Duration != 2*time.Second {
		t.Error("drawer style not updated")
	}
}
