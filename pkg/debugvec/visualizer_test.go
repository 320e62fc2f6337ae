package debugvec

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
)

const (
	tol        = 0.0001
	arrowLines = 5
)

func near(a, b float32) bool {
	return math32.Abs(a-b) <= tol
}

// shafts returns the first segment of every arrow in lines.
func shafts(lines []debugdraw.Line) []debugdraw.Line {
	var out []debugdraw.Line
	for i := 0; i < len(lines); i += arrowLines {
		out = append(out, lines[i])
	}
	return out
}

func TestVectorHelpers(t *testing.T) {
	v := Vec(1, 2, 3).At(math.Vec3{X: 1})
	if v.Tip() != (math.Vec3{X: 2, Y: 2, Z: 3}) {
		t.Errorf("Tip() = %v", v.Tip())
	}
	if Of(math.Up).V != math.Up || !Of(math.Up).Origin.IsZero() {
		t.Error("Of should anchor at the world origin")
	}
}

func TestBinaryOperations(t *testing.T) {
	vz := NewVisualizer(DefaultSettings())
	origin := math.Vec3{Y: 5}
	a := Vec(1, 2, 3).At(origin)
	b := Vec(4, -1, 0)

	tests := []struct {
		name string
		op   func() (Vector, []debugdraw.Line)
		want math.Vec3
	}{
		{"Lerp", func() (Vector, []debugdraw.Line) { return vz.Lerp(a, b, 0.5) }, a.V.Lerp(b.V, 0.5)},
		{"LerpClamped", func() (Vector, []debugdraw.Line) { return vz.Lerp(a, b, 2) }, b.V},
		{"LerpUnclamped", func() (Vector, []debugdraw.Line) { return vz.LerpUnclamped(a, b, 2) }, math.Vec3{X: 7, Y: -4, Z: -3}},
		{"Max", func() (Vector, []debugdraw.Line) { return vz.Max(a, b) }, math.Vec3{X: 4, Y: 2, Z: 3}},
		{"Min", func() (Vector, []debugdraw.Line) { return vz.Min(a, b) }, math.Vec3{X: 1, Y: -1, Z: 0}},
		{"Project", func() (Vector, []debugdraw.Line) { return vz.Project(a, Of(math.Right)) }, math.Vec3{X: 1}},
		{"ProjectOnPlane", func() (Vector, []debugdraw.Line) { return vz.ProjectOnPlane(a, Of(math.Up)) }, math.Vec3{X: 1, Z: 3}},
		{"Slerp", func() (Vector, []debugdraw.Line) { return vz.Slerp(a, b, 0.3) }, a.V.Slerp(b.V, 0.3)},
		{"MoveTowards", func() (Vector, []debugdraw.Line) { return vz.MoveTowards(a, b, 100) }, b.V},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, lines := tt.op()
			if !got.V.ApproxEqual(tt.want, tol) {
				t.Errorf("result = %v, want %v", got.V, tt.want)
			}
			if got.Origin != origin {
				t.Errorf("result anchored at %v, want %v", got.Origin, origin)
			}
			if len(lines) != 3*arrowLines {
				t.Fatalf("got %d lines, want %d", len(lines), 3*arrowLines)
			}
			s := shafts(lines)
			wantColors := []debugdraw.Color{debugdraw.Yellow, debugdraw.Blue, debugdraw.Green}
			for i, l := range s {
				if l.Start != origin {
					t.Errorf("shaft %d starts at %v", i, l.Start)
				}
				if l.Color != wantColors[i] {
					t.Errorf("shaft %d color %v, want %v", i, l.Color, wantColors[i])
				}
			}
			if !s[2].End.ApproxEqual(origin.Add(tt.want), tol) {
				t.Errorf("result drawn to %v", s[2].End)
			}
		})
	}
}

func TestAddAndSubTipToTail(t *testing.T) {
	vz := NewVisualizer(DefaultSettings())
	a := Vec(1, 0, 0).At(math.Vec3{Z: 1})
	b := Vec(0, 2, 0)

	sum, lines := vz.Add(a, b)
	if sum.V != (math.Vec3{X: 1, Y: 2}) {
		t.Errorf("Add = %v", sum.V)
	}
	s := shafts(lines)
	if s[1].Start != a.Tip() || s[1].End != (math.Vec3{X: 1, Y: 2, Z: 1}) {
		t.Errorf("b drawn %v -> %v", s[1].Start, s[1].End)
	}
	if s[2].End != sum.Tip() {
		t.Errorf("sum drawn to %v, want %v", s[2].End, sum.Tip())
	}

	diff, lines := vz.Sub(a, b)
	if diff.V != (math.Vec3{X: 1, Y: -2}) {
		t.Errorf("Sub = %v", diff.V)
	}
	s = shafts(lines)
	if s[1].End != (math.Vec3{X: 1, Y: -2, Z: 1}) {
		t.Errorf("-b drawn to %v", s[1].End)
	}
}

func TestUnaryOperations(t *testing.T) {
	vz := NewVisualizer(DefaultSettings())
	v := Vec(3, 0, 4)

	tests := []struct {
		name string
		op   func() (Vector, []debugdraw.Line)
		want math.Vec3
	}{
		{"Scale", func() (Vector, []debugdraw.Line) { return vz.Scale(v, 2) }, math.Vec3{X: 6, Z: 8}},
		{"Div", func() (Vector, []debugdraw.Line) { return vz.Div(v, 2) }, math.Vec3{X: 1.5, Z: 2}},
		{"ClampMagnitude", func() (Vector, []debugdraw.Line) { return vz.ClampMagnitude(v, 1) }, math.Vec3{X: 0.6, Z: 0.8}},
		{"Normalize", func() (Vector, []debugdraw.Line) { return vz.Normalize(v) }, math.Vec3{X: 0.6, Z: 0.8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, lines := tt.op()
			if !got.V.ApproxEqual(tt.want, tol) {
				t.Errorf("result = %v, want %v", got.V, tt.want)
			}
			if len(lines) != 2*arrowLines {
				t.Fatalf("got %d lines", len(lines))
			}
			if s := shafts(lines); s[0].Color != debugdraw.Green && s[1].Color != debugdraw.Green {
				t.Error("result not drawn")
			}
		})
	}
}

func TestScaleDrawsResultFirst(t *testing.T) {
	vz := NewVisualizer(DefaultSettings())
	_, lines := vz.Scale(Vec(1, 0, 0), 3)
	if lines[0].Color != debugdraw.Green || lines[arrowLines].Color != debugdraw.Yellow {
		t.Errorf("colors %v then %v", lines[0].Color, lines[arrowLines].Color)
	}
}

func TestScalarOperations(t *testing.T) {
	vz := NewVisualizer(DefaultSettings())
	a := Vec(1, 0, 0)
	b := Vec(0, 2, 0)

	if got, lines := vz.Angle(a, b); !near(got, 90) || len(lines) != 2*arrowLines {
		t.Errorf("Angle = %v with %d lines", got, len(lines))
	}
	if got, lines := vz.Magnitude(b); !near(got, 2) || len(lines) != arrowLines {
		t.Errorf("Magnitude = %v with %d lines", got, len(lines))
	}

	got, lines := vz.Distance(a, b)
	if !near(got, math32.Sqrt(5)) {
		t.Errorf("Distance = %v", got)
	}
	if len(lines) != 2*arrowLines+1 {
		t.Fatalf("Distance drew %d lines", len(lines))
	}
	last := lines[len(lines)-1]
	if last.Start != a.Tip() || last.End != b.Tip() || last.Color != debugdraw.Green {
		t.Errorf("distance line %v -> %v in %v", last.Start, last.End, last.Color)
	}
}

func TestDot(t *testing.T) {
	a := Vec(2, 3, 0)
	b := Vec(4, 0, 0)

	vz := NewVisualizer(DefaultSettings())
	got, lines := vz.Dot(a, b)
	if !near(got, 8) {
		t.Errorf("Dot = %v", got)
	}
	if len(lines) != 3*arrowLines {
		t.Fatalf("got %d lines", len(lines))
	}
	if proj := shafts(lines)[2].End; !proj.ApproxEqual(math.Vec3{X: 2}, tol) {
		t.Errorf("projection drawn to %v", proj)
	}

	s := DefaultSettings()
	s.DotAsProjection = false
	_, lines = NewVisualizer(s).Dot(a, b)
	if len(lines) != 2*arrowLines {
		t.Errorf("got %d lines without projection", len(lines))
	}
}

func TestCrossUsesEachOrigin(t *testing.T) {
	vz := NewVisualizer(DefaultSettings())
	lhs := Of(math.Right).At(math.Vec3{Y: 1})
	rhs := Of(math.Up).At(math.Vec3{Z: 5})

	got, lines := vz.Cross(lhs, rhs)
	if got.V != math.Forward {
		t.Errorf("Cross = %v", got.V)
	}
	s := shafts(lines)
	if s[1].Start != rhs.Origin {
		t.Errorf("rhs drawn from %v", s[1].Start)
	}
	if s[2].Start != lhs.Origin {
		t.Errorf("result drawn from %v", s[2].Start)
	}
}

func TestReflect(t *testing.T) {
	vz := NewVisualizer(DefaultSettings())
	got, lines := vz.Reflect(Vec(1, -1, 0), Of(math.Up))
	if !got.V.ApproxEqual(math.Vec3{X: 1, Y: 1}, tol) {
		t.Errorf("Reflect = %v", got.V)
	}
	if in := shafts(lines)[0]; !in.End.IsZero() || in.Start != (math.Vec3{X: -1, Y: 1}) {
		t.Errorf("incoming drawn %v -> %v", in.Start, in.End)
	}
}

func TestSmoothDampUpdatesVelocity(t *testing.T) {
	vz := NewVisualizer(DefaultSettings())
	var vel math.Vec3
	got, lines := vz.SmoothDamp(Vec(0, 0, 0), Vec(10, 0, 0), &vel, 0.3, math32.Inf(1), 0.02)
	if got.V.X <= 0 || got.V.X >= 10 {
		t.Errorf("SmoothDamp moved to %v", got.V)
	}
	if vel.X <= 0 {
		t.Errorf("velocity = %v", vel)
	}
	if len(lines) != 3*arrowLines {
		t.Errorf("got %d lines", len(lines))
	}
}

func TestSettingsFilterLines(t *testing.T) {
	tests := []struct {
		name     string
		operands bool
		result   bool
		arrows   bool
		want     int
	}{
		{"all", true, true, true, 3 * arrowLines},
		{"result only", false, true, true, arrowLines},
		{"operands only", true, false, true, 2 * arrowLines},
		{"nothing", false, false, true, 0},
		{"plain lines", true, true, false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.ShowOperands, s.ShowResult, s.Arrows = tt.operands, tt.result, tt.arrows
			_, lines := NewVisualizer(s).Lerp(Vec(1, 0, 0), Vec(0, 1, 0), 0.5)
			if len(lines) != tt.want {
				t.Errorf("got %d lines, want %d", len(lines), tt.want)
			}
		})
	}
}

func TestSameColorsStillFilterByRole(t *testing.T) {
	s := DefaultSettings()
	s.ColorA = debugdraw.Green
	s.ColorB = debugdraw.Green
	s.ShowResult = false
	_, lines := NewVisualizer(s).Max(Vec(1, 0, 0), Vec(0, 1, 0))
	if len(lines) != 2*arrowLines {
		t.Errorf("got %d lines, want %d", len(lines), 2*arrowLines)
	}
}

func TestDraw(t *testing.T) {
	s := DefaultSettings()
	s.DepthTest = false
	vz := NewVisualizer(s)
	_, lines := vz.Add(Vec(1, 0, 0), Vec(0, 1, 0))

	rec := &debugdraw.Recorder{}
	vz.Draw(rec, lines)
	if rec.Len() != len(lines) {
		t.Fatalf("recorded %d lines, want %d", rec.Len(), len(lines))
	}
	for _, l := range rec.Lines {
		if l.DepthTest || l.Duration != debugdraw.MinDuration {
			t.Fatalf("line %+v ignores settings", l)
		}
	}
}
