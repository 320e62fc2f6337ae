package wireframe

import "github.com/Faultbox/physdebug/pkg/math"

// ArrowSegmentCount is the number of segments Arrow emits.
const ArrowSegmentCount = 5

// Arrow draws a shaft from start to end plus a four-stroke head.
//
// Each head stroke runs from end to end - d*scale ± up*scale or
// end - d*scale ± right*scale, where d is the unit shaft direction and
// (right, up) comes from Basis(d). The shaft is always the first segment.
func Arrow(start, end math.Vec3, scale float32) []Segment {
	direction := end.Sub(start).Normalize()
	right, up := Basis(direction)
	right = right.Scale(scale)
	up = up.Scale(scale)
	back := end.Sub(direction.Scale(scale))

	return []Segment{
		{Start: start, End: end},
		{Start: end, End: back.Add(up)},
		{Start: end, End: back.Sub(up)},
		{Start: end, End: back.Add(right)},
		{Start: end, End: back.Sub(right)},
	}
}

// Point draws a three-axis cross of half-length scale centered on p.
func Point(p math.Vec3, scale float32) []Segment {
	up := math.Up.Scale(scale)
	left := math.Left.Scale(scale)
	fwd := math.Forward.Scale(scale)
	return []Segment{
		{Start: p.Sub(up), End: p.Add(up)},
		{Start: p.Sub(left), End: p.Add(left)},
		{Start: p.Sub(fwd), End: p.Add(fwd)},
	}
}

// Grid draws a square grid in the horizontal plane at center.Y, with
// lines every spacing units out to halfSize from center.
func Grid(center math.Vec3, halfSize, spacing float32) []Segment {
	if spacing <= 0 || halfSize <= 0 {
		return nil
	}
	n := int(halfSize / spacing)
	extent := float32(n) * spacing
	out := make([]Segment, 0, 2*(2*n+1))
	for i := -n; i <= n; i++ {
		off := float32(i) * spacing
		out = append(out,
			Segment{
				Start: center.Add(math.Vec3{X: off, Z: -extent}),
				End:   center.Add(math.Vec3{X: off, Z: extent}),
			},
			Segment{
				Start: center.Add(math.Vec3{X: -extent, Z: off}),
				End:   center.Add(math.Vec3{X: extent, Z: off}),
			},
		)
	}
	return out
}
