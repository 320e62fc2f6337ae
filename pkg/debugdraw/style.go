package debugdraw

import (
	"time"

	"github.com/Faultbox/physdebug/pkg/wireframe"
)

// MinDuration is the shortest line lifetime. Negative durations are raised
// to it.
const MinDuration = 100 * time.Microsecond

// Style holds the display attributes shared by every shape a Drawer emits.
type Style struct {
	// Duration is how long lines stay visible.
	Duration time.Duration
	// DepthTest lets scene geometry occlude lines.
	DepthTest bool
	// PointScale is the half-length of point crosses. Small points use half
	// of it, large points twice.
	PointScale float32
	// ArrowScale is the arrow head size.
	ArrowScale float32
	// Segments is the quarter-arc segment count of spheres and capsule caps.
	Segments int
}

// DefaultStyle returns the default style.
func DefaultStyle() Style {
	return Style{
		Duration:   MinDuration,
		DepthTest:  true,
		PointScale: 0.05,
		ArrowScale: 0.1,
		Segments:   wireframe.DefaultSegments,
	}
}

// SmallPointScale returns the half-length of small point crosses.
func (s Style) SmallPointScale() float32 {
	return s.PointScale / 2
}

// LargePointScale returns the half-length of large point crosses.
func (s Style) LargePointScale() float32 {
	return s.PointScale * 2
}

func (s Style) lineDuration() time.Duration {
	if s.Duration < 0 {
		return MinDuration
	}
	return s.Duration
}
