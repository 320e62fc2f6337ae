package wireframe

import "github.com/Faultbox/physdebug/pkg/math"

// Arc draws the arc swept from center+from to center+to, spherically
// interpolated in segments steps. Radius is interpolated linearly when
// from and to differ in length.
func Arc(center, from, to math.Vec3, segments int) []Segment {
	segments, _ = ClampSegments(segments)
	out := make([]Segment, 0, segments)
	prev := center.Add(from)
	for i := 1; i <= segments; i++ {
		next := center.Add(from.Slerp(to, float32(i)/float32(segments)))
		out = append(out, Segment{Start: prev, End: next})
		prev = next
	}
	return out
}

// ArcArrow is Arc with an arrow head on its last chord.
func ArcArrow(center, from, to math.Vec3, segments int, scale float32) []Segment {
	out := Arc(center, from, to, segments)
	last := out[len(out)-1]
	return append(out, Arrow(last.Start, last.End, scale)[1:]...)
}
