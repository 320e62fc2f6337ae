package demo

import (
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/physdebug/internal/config"
	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
)

// Report summarizes the lines a headless run emitted.
type Report struct {
	Frames      int            `yaml:"frames"`
	Steps       int            `yaml:"steps"`
	Elapsed     string         `yaml:"elapsed"`
	Features    string         `yaml:"features"`
	Lines       int            `yaml:"lines"`
	MaxPerFrame int            `yaml:"max_per_frame"`
	DepthTested int            `yaml:"depth_tested"`
	Overlay     int            `yaml:"overlay"`
	ByColor     map[string]int `yaml:"by_color"`
	Bounds      *Bounds        `yaml:"bounds,omitempty"`
	Detail      []LineRecord   `yaml:"detail,omitempty"`
}

// Bounds is the axis-aligned box around every line endpoint.
type Bounds struct {
	Min [3]float32 `yaml:"min,flow"`
	Max [3]float32 `yaml:"max,flow"`
}

// LineRecord is one line in a detailed report.
type LineRecord struct {
	Frame     int        `yaml:"frame"`
	Start     [3]float32 `yaml:"start,flow"`
	End       [3]float32 `yaml:"end,flow"`
	Color     string     `yaml:"color"`
	DepthTest bool       `yaml:"depth_test"`
}

// RecordOptions controls a headless run.
type RecordOptions struct {
	Frames    int
	FrameTime time.Duration
	Features  Feature
	// Detail lists every line in the report.
	Detail bool
}

// Record runs the scenario for opts.Frames frames into a recorder and
// summarizes what was drawn.
func Record(cfg *config.Config, opts RecordOptions, log *zap.Logger) (*Report, error) {
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("frame count must be positive, got %d", opts.Frames)
	}
	if opts.FrameTime <= 0 {
		return nil, fmt.Errorf("frame time must be positive, got %v", opts.FrameTime)
	}

	rec := &debugdraw.Recorder{}
	s, err := New(cfg, rec, opts.Features, log)
	if err != nil {
		return nil, err
	}

	var all []debugdraw.Line
	var detail []LineRecord
	maxPerFrame := 0
	for frame := 0; frame < opts.Frames; frame++ {
		rec.Reset()
		s.Advance(opts.FrameTime)
		maxPerFrame = max(maxPerFrame, rec.Len())
		all = append(all, rec.Lines...)
		if opts.Detail {
			detail = append(detail, lo.Map(rec.Lines, func(l debugdraw.Line, _ int) LineRecord {
				return LineRecord{
					Frame:     frame,
					Start:     vec(l.Start),
					End:       vec(l.End),
					Color:     l.Color.Hex(),
					DepthTest: l.DepthTest,
				}
			})...)
		}
	}

	depth := lo.CountBy(all, func(l debugdraw.Line) bool { return l.DepthTest })
	r := &Report{
		Frames:      s.Frames(),
		Steps:       s.Steps(),
		Elapsed:     s.Elapsed().String(),
		Features:    opts.Features.String(),
		Lines:       len(all),
		MaxPerFrame: maxPerFrame,
		DepthTested: depth,
		Overlay:     len(all) - depth,
		ByColor:     lo.CountValuesBy(all, func(l debugdraw.Line) string { return l.Color.Hex() }),
		Bounds:      boundsOf(all),
		Detail:      detail,
	}
	return r, nil
}

func vec(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func boundsOf(lines []debugdraw.Line) *Bounds {
	if len(lines) == 0 {
		return nil
	}
	least, most := lines[0].Start, lines[0].Start
	for _, l := range lines {
		least = least.Min(l.Start).Min(l.End)
		most = most.Max(l.Start).Max(l.End)
	}
	return &Bounds{Min: vec(least), Max: vec(most)}
}

// WriteYAML encodes r to w.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
