package debugdraw

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

// Drawer emits wireframe shapes into a Sink using a fixed Style.
// A Drawer is not safe for concurrent use unless its sink is.
type Drawer struct {
	sink  Sink
	style Style
	log   *zap.Logger
}

// New creates a Drawer. A segment count below wireframe.MinSegments is
// raised and logged as a warning. A nil logger discards logs.
func New(sink Sink, style Style, log *zap.Logger) *Drawer {
	if log == nil {
		log = zap.NewNop()
	}
	if sink == nil {
		sink = Discard
	}
	d := &Drawer{sink: sink, log: log}
	d.style = d.checkStyle(style)
	return d
}

func (d *Drawer) checkStyle(style Style) Style {
	if n, corrected := wireframe.ClampSegments(style.Segments); corrected {
		d.log.Warn("segment count below minimum, clamping",
			zap.Int("requested", style.Segments),
			zap.Int("using", n))
		style.Segments = n
	}
	return style
}

// Style returns the drawer's style.
func (d *Drawer) Style() Style {
	return d.style
}

// Sink returns the underlying sink.
func (d *Drawer) Sink() Sink {
	return d.sink
}

// WithStyle returns a drawer sharing the sink and logger with a new style.
func (d *Drawer) WithStyle(style Style) *Drawer {
	c := &Drawer{sink: d.sink, log: d.log}
	c.style = c.checkStyle(style)
	return c
}

// WithDuration returns a drawer whose lines last for dur.
func (d *Drawer) WithDuration(dur time.Duration) *Drawer {
	s := d.style
	s.Duration = dur
	return d.WithStyle(s)
}

// WithDepthTest returns a drawer with depth testing set to on.
func (d *Drawer) WithDepthTest(on bool) *Drawer {
	s := d.style
	s.DepthTest = on
	return d.WithStyle(s)
}

// Segments draws every segment in color.
func (d *Drawer) Segments(segs []wireframe.Segment, color Color) {
	dur := d.style.lineDuration()
	for _, s := range segs {
		d.sink.DrawLine(Line{
			Start:     s.Start,
			End:       s.End,
			Color:     color,
			Duration:  dur,
			DepthTest: d.style.DepthTest,
		})
	}
}

// Line draws a single line.
func (d *Drawer) Line(start, end math.Vec3, color Color) {
	d.Segments([]wireframe.Segment{{Start: start, End: end}}, color)
}

// Raycast draws a ray from start to end.
func (d *Drawer) Raycast(start, end math.Vec3, color Color) {
	d.Line(start, end, color)
}

// Point draws a point cross at the default point scale.
func (d *Drawer) Point(p math.Vec3, color Color) {
	d.Segments(wireframe.Point(p, d.style.PointScale), color)
}

// PointSmall draws a point cross at half the default scale.
func (d *Drawer) PointSmall(p math.Vec3, color Color) {
	d.Segments(wireframe.Point(p, d.style.SmallPointScale()), color)
}

// PointLarge draws a point cross at twice the default scale.
func (d *Drawer) PointLarge(p math.Vec3, color Color) {
	d.Segments(wireframe.Point(p, d.style.LargePointScale()), color)
}

// PointScaled draws a point cross of half-length scale.
func (d *Drawer) PointScaled(p math.Vec3, color Color, scale float32) {
	d.Segments(wireframe.Point(p, scale), color)
}

// Vector draws an arrow from start to end.
func (d *Drawer) Vector(start, end math.Vec3, color Color) {
	d.Segments(wireframe.Arrow(start, end, d.style.ArrowScale), color)
}

// VectorScaled draws an arrow with an explicit head scale.
func (d *Drawer) VectorScaled(start, end math.Vec3, color Color, scale float32) {
	d.Segments(wireframe.Arrow(start, end, scale), color)
}

// VectorDir draws an arrow from start along direction for distance.
func (d *Drawer) VectorDir(start, direction math.Vec3, distance float32, color Color) {
	d.Vector(start, start.Add(direction.Scale(distance)), color)
}

// Sphere draws a sphere whose rings are oriented by forward.
func (d *Drawer) Sphere(center math.Vec3, radius float32, forward math.Vec3, color Color) {
	d.Segments(wireframe.Sphere(center, radius, forward, d.style.Segments), color)
}

// Box draws an oriented box.
func (d *Drawer) Box(center, halfExtents math.Vec3, orient math.Quat, color Color) {
	d.Segments(wireframe.Box(center, halfExtents, orient), color)
}

// Bounds draws an axis-aligned box between min and max.
func (d *Drawer) Bounds(min, max math.Vec3, color Color) {
	d.Segments(wireframe.Bounds(min, max, 0), color)
}

// Capsule draws a capsule between two hemisphere centers.
func (d *Drawer) Capsule(point1, point2 math.Vec3, radius float32, color Color) {
	d.Segments(wireframe.Capsule(point1, point2, radius, d.style.Segments), color)
}

// Shape draws any collider shape. See wireframe.ForShape for lenient.
func (d *Drawer) Shape(s wireframe.Shape, color Color, lenient bool) error {
	segs, err := wireframe.ForShape(s, math.Up, d.style.Segments, lenient)
	if err != nil {
		return err
	}
	d.Segments(segs, color)
	return nil
}

// Shapes draws several shapes leniently.
func (d *Drawer) Shapes(shapes []wireframe.Shape, color Color) {
	for _, s := range shapes {
		if err := d.Shape(s, color, true); err != nil {
			d.log.Debug("skipping shape", zap.Stringer("kind", s.Kind), zap.Error(err))
		}
	}
}

// SphereCast draws the volume swept by a sphere from origin to end.
func (d *Drawer) SphereCast(origin, end math.Vec3, radius float32, direction math.Vec3, color Color) {
	d.Segments(wireframe.SphereSweep(origin, end, radius, direction, d.style.Segments), color)
}

// BoxCast draws the volume swept by a box moved distance along direction.
func (d *Drawer) BoxCast(center, halfExtents math.Vec3, orient math.Quat, direction math.Vec3, distance float32, color Color) {
	d.Segments(wireframe.BoxSweep(center, halfExtents, orient, direction, distance), color)
}

// CapsuleCast draws the volume swept by a capsule between two poses.
func (d *Drawer) CapsuleCast(point1, point2, point1End, point2End math.Vec3, radius float32, color Color) {
	d.Segments(wireframe.CapsuleSweep(point1, point2, point1End, point2End, radius, d.style.Segments), color)
}

// ShapeCast draws any shape swept distance along direction.
func (d *Drawer) ShapeCast(s wireframe.Shape, direction math.Vec3, distance float32, color Color) {
	d.Segments(wireframe.ShapeSweep(s, direction, distance, d.style.Segments), color)
}

// AngleBetween draws the arc from origin+from to origin+to, with an arrow
// head at the end when arrow is set.
func (d *Drawer) AngleBetween(origin, from, to math.Vec3, color Color, arrow bool) {
	n := 2 * d.style.Segments
	if arrow {
		d.Segments(wireframe.ArcArrow(origin, from, to, n, d.style.ArrowScale), color)
		return
	}
	d.Segments(wireframe.Arc(origin, from, to, n), color)
}

// Grid draws a horizontal reference grid.
func (d *Drawer) Grid(center math.Vec3, halfSize, spacing float32, color Color) {
	d.Segments(wireframe.Grid(center, halfSize, spacing), color)
}
