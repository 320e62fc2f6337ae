// Package lines keeps debug lines alive for their duration and packs them
// into vertex data for the renderer.
package lines

import (
	"time"

	"github.com/samber/lo"

	"github.com/Faultbox/physdebug/pkg/debugdraw"
)

// FloatsPerVertex is the packed vertex layout: x, y, z, r, g, b, a.
const FloatsPerVertex = 7

type timedLine struct {
	line debugdraw.Line
	age  time.Duration
}

// Buffer is a debugdraw.Sink that holds lines until they expire.
// Every line is visible for at least one frame. A Buffer is not safe for
// concurrent use.
type Buffer struct {
	lines []timedLine
	// Max caps the number of live lines. Zero means no cap.
	Max     int
	dropped int
}

// NewBuffer creates a buffer holding at most max lines.
func NewBuffer(max int) *Buffer {
	return &Buffer{Max: max}
}

// DrawLine implements debugdraw.Sink.
func (b *Buffer) DrawLine(l debugdraw.Line) {
	if b.Max > 0 && len(b.lines) >= b.Max {
		b.dropped++
		return
	}
	b.lines = append(b.lines, timedLine{line: l})
}

// Tick ages every line by dt and removes the expired ones. It returns the
// number removed.
func (b *Buffer) Tick(dt time.Duration) int {
	before := len(b.lines)
	for i := range b.lines {
		b.lines[i].age += dt
	}
	b.lines = lo.Reject(b.lines, func(t timedLine, _ int) bool {
		return t.age >= t.line.Duration
	})
	return before - len(b.lines)
}

// Len returns the number of live lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Dropped returns how many lines were refused because the buffer was full.
func (b *Buffer) Dropped() int {
	return b.dropped
}

// Clear removes every line.
func (b *Buffer) Clear() {
	b.lines = b.lines[:0]
	b.dropped = 0
}

// Lines returns a copy of the live lines.
func (b *Buffer) Lines() []debugdraw.Line {
	return lo.Map(b.lines, func(t timedLine, _ int) debugdraw.Line { return t.line })
}

// Vertices packs the live lines whose depth test setting matches depthTest,
// two vertices per line, into dst and returns it.
func (b *Buffer) Vertices(dst []float32, depthTest bool) []float32 {
	dst = dst[:0]
	for _, t := range b.lines {
		l := t.line
		if l.DepthTest != depthTest {
			continue
		}
		c := l.Color
		dst = append(dst,
			l.Start.X, l.Start.Y, l.Start.Z, c.R, c.G, c.B, c.A,
			l.End.X, l.End.Y, l.End.Z, c.R, c.G, c.B, c.A,
		)
	}
	return dst
}
