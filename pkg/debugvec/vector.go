// Package debugvec performs vector math and returns the lines that
// illustrate each operation.
//
// Every operation returns its result together with the lines for operand A,
// operand B and the result, anchored at A's origin. Nothing is drawn until
// the caller passes the lines to Visualizer.Draw.
package debugvec

import (
	"time"

	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
)

// Vector is a vector drawn from Origin.
type Vector struct {
	V      math.Vec3
	Origin math.Vec3
}

// Vec returns a vector anchored at the world origin.
func Vec(x, y, z float32) Vector {
	return Vector{V: math.Vec3{X: x, Y: y, Z: z}}
}

// Of wraps v, anchored at the world origin.
func Of(v math.Vec3) Vector {
	return Vector{V: v}
}

// At returns v anchored at origin.
func (v Vector) At(origin math.Vec3) Vector {
	v.Origin = origin
	return v
}

// Tip returns the point the vector ends at.
func (v Vector) Tip() math.Vec3 {
	return v.Origin.Add(v.V)
}

// Settings controls which parts of an operation are drawn and how.
type Settings struct {
	// ShowOperands draws the input vectors.
	ShowOperands bool
	// ShowResult draws the result.
	ShowResult bool

	ColorA      debugdraw.Color
	ColorB      debugdraw.Color
	ResultColor debugdraw.Color

	// Arrows draws vectors with arrow heads instead of plain lines.
	Arrows     bool
	ArrowScale float32
	Duration   time.Duration
	DepthTest  bool

	// DotAsProjection draws Dot as the projection of A on B.
	DotAsProjection bool
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		ShowOperands:    true,
		ShowResult:      true,
		ColorA:          debugdraw.Yellow,
		ColorB:          debugdraw.Blue,
		ResultColor:     debugdraw.Green,
		Arrows:          true,
		ArrowScale:      0.1,
		Duration:        debugdraw.MinDuration,
		DepthTest:       true,
		DotAsProjection: true,
	}
}
