// Package wireframe generates line-segment wireframes for debug shapes.
//
// Every generator is a pure function: it takes a shape description and
// returns the ordered list of segments that outline it in world space.
// Nothing here draws; see package debugdraw for forwarding segments to a
// line sink.
package wireframe

import "github.com/Faultbox/physdebug/pkg/math"

// MinSegments is the lowest segment count accepted by curved generators.
const MinSegments = 2

// DefaultSegments is the quarter-arc segment count used when none is configured.
const DefaultSegments = 4

// FloatsPerSegment is the number of floats Vertices emits per segment.
const FloatsPerSegment = 6

// Segment is a straight line between two world-space points.
type Segment struct {
	Start math.Vec3
	End   math.Vec3
}

// Length returns the distance between the segment endpoints.
func (s Segment) Length() float32 {
	return s.Start.Distance(s.End)
}

// Direction returns End - Start.
func (s Segment) Direction() math.Vec3 {
	return s.End.Sub(s.Start)
}

// ClampSegments raises n to MinSegments. The second result reports whether
// n had to be corrected.
func ClampSegments(n int) (int, bool) {
	if n < MinSegments {
		return MinSegments, true
	}
	return n, false
}

// Vertices flattens segments into an [x, y, z] per vertex list,
// two vertices per segment, suitable for GL_LINES upload.
func Vertices(segments []Segment) []float32 {
	out := make([]float32, 0, len(segments)*FloatsPerSegment)
	for _, s := range segments {
		out = append(out,
			s.Start.X, s.Start.Y, s.Start.Z,
			s.End.X, s.End.Y, s.End.Z,
		)
	}
	return out
}

// Translate offsets every segment by delta.
func Translate(segments []Segment, delta math.Vec3) []Segment {
	out := make([]Segment, len(segments))
	for i, s := range segments {
		out[i] = Segment{Start: s.Start.Add(delta), End: s.End.Add(delta)}
	}
	return out
}
