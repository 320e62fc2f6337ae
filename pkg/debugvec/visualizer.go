package debugvec

import (
	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

type role int

const (
	roleA role = iota
	roleB
	roleResult
)

// Visualizer runs vector operations and builds their lines.
type Visualizer struct {
	Settings Settings
}

// NewVisualizer returns a Visualizer using settings.
func NewVisualizer(settings Settings) Visualizer {
	return Visualizer{Settings: settings}
}

// Draw sends lines to sink.
func (vz Visualizer) Draw(sink debugdraw.Sink, lines []debugdraw.Line) {
	debugdraw.DrawLines(sink, lines)
}

// plot collects the lines of one operation.
type plot struct {
	s     Settings
	lines []debugdraw.Line
}

func (vz Visualizer) plot() *plot {
	return &plot{s: vz.Settings}
}

func (p *plot) shown(r role) (debugdraw.Color, bool) {
	switch r {
	case roleA:
		return p.s.ColorA, p.s.ShowOperands
	case roleB:
		return p.s.ColorB, p.s.ShowOperands
	default:
		return p.s.ResultColor, p.s.ShowResult
	}
}

func (p *plot) add(segs []wireframe.Segment, color debugdraw.Color) {
	for _, s := range segs {
		p.lines = append(p.lines, debugdraw.Line{
			Start:     s.Start,
			End:       s.End,
			Color:     color,
			Duration:  p.s.Duration,
			DepthTest: p.s.DepthTest,
		})
	}
}

// vector draws start->end as an arrow or a plain line.
func (p *plot) vector(r role, start, end math.Vec3) *plot {
	color, ok := p.shown(r)
	if !ok {
		return p
	}
	if p.s.Arrows {
		p.add(wireframe.Arrow(start, end, p.s.ArrowScale), color)
	} else {
		p.add([]wireframe.Segment{{Start: start, End: end}}, color)
	}
	return p
}

// line always draws a plain line.
func (p *plot) line(r role, start, end math.Vec3) *plot {
	if color, ok := p.shown(r); ok {
		p.add([]wireframe.Segment{{Start: start, End: end}}, color)
	}
	return p
}

// binary draws a and b from a's origin followed by result.
func (vz Visualizer) binary(a, b Vector, result math.Vec3) (Vector, []debugdraw.Line) {
	o := a.Origin
	p := vz.plot().
		vector(roleA, o, a.Tip()).
		vector(roleB, o, o.Add(b.V)).
		vector(roleResult, o, o.Add(result))
	return Vector{V: result, Origin: o}, p.lines
}

// unary draws v followed by result.
func (vz Visualizer) unary(v Vector, result math.Vec3) (Vector, []debugdraw.Line) {
	o := v.Origin
	p := vz.plot().
		vector(roleA, o, v.Tip()).
		vector(roleResult, o, o.Add(result))
	return Vector{V: result, Origin: o}, p.lines
}

// Add returns a + b, drawn tip to tail.
func (vz Visualizer) Add(a, b Vector) (Vector, []debugdraw.Line) {
	o := a.Origin
	sum := a.V.Add(b.V)
	p := vz.plot().
		vector(roleA, o, a.Tip()).
		vector(roleB, a.Tip(), a.Tip().Add(b.V)).
		vector(roleResult, o, o.Add(sum))
	return Vector{V: sum, Origin: o}, p.lines
}

// Sub returns a - b, with -b drawn from the tip of a.
func (vz Visualizer) Sub(a, b Vector) (Vector, []debugdraw.Line) {
	o := a.Origin
	diff := a.V.Sub(b.V)
	p := vz.plot().
		vector(roleA, o, a.Tip()).
		vector(roleB, a.Tip(), a.Tip().Sub(b.V)).
		vector(roleResult, o, o.Add(diff))
	return Vector{V: diff, Origin: o}, p.lines
}

// Scale returns a * m.
func (vz Visualizer) Scale(a Vector, m float32) (Vector, []debugdraw.Line) {
	o := a.Origin
	result := a.V.Scale(m)
	p := vz.plot().
		vector(roleResult, o, o.Add(result)).
		vector(roleA, o, a.Tip())
	return Vector{V: result, Origin: o}, p.lines
}

// Div returns a / d.
func (vz Visualizer) Div(a Vector, d float32) (Vector, []debugdraw.Line) {
	return vz.unary(a, a.V.Div(d))
}

// Angle returns the unsigned angle in degrees between from and to.
func (vz Visualizer) Angle(from, to Vector) (float32, []debugdraw.Line) {
	o := from.Origin
	p := vz.plot().
		vector(roleA, o, from.Tip()).
		vector(roleB, o, o.Add(to.V))
	return from.V.Angle(to.V), p.lines
}

// ClampMagnitude returns v with its length limited to maxLength.
func (vz Visualizer) ClampMagnitude(v Vector, maxLength float32) (Vector, []debugdraw.Line) {
	return vz.unary(v, v.V.ClampMagnitude(maxLength))
}

// Cross returns lhs × rhs. Each operand is drawn from its own origin.
func (vz Visualizer) Cross(lhs, rhs Vector) (Vector, []debugdraw.Line) {
	o := lhs.Origin
	result := lhs.V.Cross(rhs.V)
	p := vz.plot().
		vector(roleA, o, lhs.Tip()).
		vector(roleB, rhs.Origin, rhs.Tip()).
		vector(roleResult, o, o.Add(result))
	return Vector{V: result, Origin: o}, p.lines
}

// Distance returns the distance between a and b, drawn as a line between
// their tips.
func (vz Visualizer) Distance(a, b Vector) (float32, []debugdraw.Line) {
	o := a.Origin
	p := vz.plot().
		vector(roleA, o, a.Tip()).
		vector(roleB, o, o.Add(b.V)).
		line(roleResult, a.Tip(), o.Add(b.V))
	return a.V.Distance(b.V), p.lines
}

// Dot returns lhs · rhs. With DotAsProjection the projection of lhs onto
// rhs is drawn as the result.
func (vz Visualizer) Dot(lhs, rhs Vector) (float32, []debugdraw.Line) {
	o := lhs.Origin
	p := vz.plot().
		vector(roleA, o, lhs.Tip()).
		vector(roleB, o, o.Add(rhs.V))
	if vz.Settings.DotAsProjection {
		p.vector(roleResult, o, o.Add(lhs.V.Project(rhs.V.Normalize())))
	}
	return lhs.V.Dot(rhs.V), p.lines
}

// Lerp interpolates from a to b with t clamped to [0, 1].
func (vz Visualizer) Lerp(a, b Vector, t float32) (Vector, []debugdraw.Line) {
	return vz.binary(a, b, a.V.Lerp(b.V, t))
}

// LerpUnclamped interpolates from a to b without clamping t.
func (vz Visualizer) LerpUnclamped(a, b Vector, t float32) (Vector, []debugdraw.Line) {
	return vz.binary(a, b, a.V.LerpUnclamped(b.V, t))
}

// Max returns the component-wise maximum.
func (vz Visualizer) Max(lhs, rhs Vector) (Vector, []debugdraw.Line) {
	return vz.binary(lhs, rhs, lhs.V.Max(rhs.V))
}

// Min returns the component-wise minimum.
func (vz Visualizer) Min(lhs, rhs Vector) (Vector, []debugdraw.Line) {
	return vz.binary(lhs, rhs, lhs.V.Min(rhs.V))
}

// Project projects v onto normal.
func (vz Visualizer) Project(v, normal Vector) (Vector, []debugdraw.Line) {
	return vz.binary(v, normal, v.V.Project(normal.V))
}

// ProjectOnPlane projects v onto the plane with the given normal.
func (vz Visualizer) ProjectOnPlane(v, planeNormal Vector) (Vector, []debugdraw.Line) {
	return vz.binary(v, planeNormal, v.V.ProjectOnPlane(planeNormal.V))
}

// Reflect reflects v off the plane defined by normal. The incoming vector
// is drawn ending at the origin.
func (vz Visualizer) Reflect(v, normal Vector) (Vector, []debugdraw.Line) {
	o := v.Origin
	result := v.V.Reflect(normal.V)
	p := vz.plot().
		vector(roleA, o.Sub(v.V), o).
		vector(roleB, o, o.Add(normal.V)).
		vector(roleResult, o, o.Add(result))
	return Vector{V: result, Origin: o}, p.lines
}

// Slerp spherically interpolates between a and b.
func (vz Visualizer) Slerp(a, b Vector, t float32) (Vector, []debugdraw.Line) {
	return vz.binary(a, b, a.V.Slerp(b.V, t))
}

// MoveTowards moves current towards target by at most maxDelta.
func (vz Visualizer) MoveTowards(current, target Vector, maxDelta float32) (Vector, []debugdraw.Line) {
	return vz.binary(current, target, current.V.MoveTowards(target.V, maxDelta))
}

// SmoothDamp gradually moves current towards target, updating velocity.
func (vz Visualizer) SmoothDamp(current, target Vector, velocity *math.Vec3, smoothTime, maxSpeed, deltaTime float32) (Vector, []debugdraw.Line) {
	return vz.binary(current, target, current.V.SmoothDamp(target.V, velocity, smoothTime, maxSpeed, deltaTime))
}

// Normalize returns v scaled to unit length.
func (vz Visualizer) Normalize(v Vector) (Vector, []debugdraw.Line) {
	return vz.unary(v, v.V.Normalize())
}

// Magnitude returns the length of v.
func (vz Visualizer) Magnitude(v Vector) (float32, []debugdraw.Line) {
	p := vz.plot().vector(roleA, v.Origin, v.Tip())
	return v.V.Length(), p.lines
}
