// Package debugdraw forwards wireframe segments to a line-drawing sink.
//
// A Sink is the only rendering primitive the toolkit needs: draw one
// colored line that stays visible for a duration, optionally depth tested.
// Drawer turns shapes from package wireframe into Line values for a sink.
package debugdraw

import (
	"time"

	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

// Line is a single drawable line segment.
type Line struct {
	Start     math.Vec3
	End       math.Vec3
	Color     Color
	Duration  time.Duration
	DepthTest bool
}

// Segment returns the geometry of the line.
func (l Line) Segment() wireframe.Segment {
	return wireframe.Segment{Start: l.Start, End: l.End}
}

// Sink draws lines.
type Sink interface {
	DrawLine(l Line)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Line)

// DrawLine calls f(l).
func (f SinkFunc) DrawLine(l Line) {
	f(l)
}

// Discard is a Sink that drops every line.
var Discard Sink = SinkFunc(func(Line) {})

// Recorder is a Sink that keeps every line it receives.
type Recorder struct {
	Lines []Line
}

// DrawLine appends l.
func (r *Recorder) DrawLine(l Line) {
	r.Lines = append(r.Lines, l)
}

// Len returns the number of recorded lines.
func (r *Recorder) Len() int {
	return len(r.Lines)
}

// Reset drops all recorded lines.
func (r *Recorder) Reset() {
	r.Lines = r.Lines[:0]
}

// WithColor returns the recorded lines drawn in c.
func (r *Recorder) WithColor(c Color) []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.Color == c {
			out = append(out, l)
		}
	}
	return out
}

// Segments returns the geometry of every recorded line.
func (r *Recorder) Segments() []wireframe.Segment {
	out := make([]wireframe.Segment, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Segment()
	}
	return out
}

// DrawLines sends every line to sink.
func DrawLines(sink Sink, lines []Line) {
	for _, l := range lines {
		sink.DrawLine(l)
	}
}
