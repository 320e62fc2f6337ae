// Package debugphysics wraps a physics.Engine so that every query also
// draws what it did: the cast volume, where it hit, and the hit normals.
//
// Wrappers call the engine first and draw afterwards; the engine's answer
// is returned unchanged.
package debugphysics

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

// Settings controls what the wrappers draw.
type Settings struct {
	HitColor       debugdraw.Color
	NoHitColor     debugdraw.Color
	HitNormalColor debugdraw.Color

	// Duration is the lifetime of query lines.
	Duration time.Duration
	// IgnoreCollisionDuration is the lifetime of lines drawn by IgnoreCollision.
	IgnoreCollisionDuration time.Duration
	DepthTest               bool

	// MaxDrawLength caps the drawn length of casts with large or infinite
	// max distances.
	MaxDrawLength float32

	DrawHitPoints            bool
	DrawHitNormals           bool
	DrawOverlapColliders     bool
	DrawClosestPointCollider bool
	DrawPenetrationColliders bool
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		HitColor:                 debugdraw.Green,
		NoHitColor:               debugdraw.Red,
		HitNormalColor:           debugdraw.Blue,
		Duration:                 debugdraw.MinDuration,
		IgnoreCollisionDuration:  time.Second,
		DepthTest:                true,
		MaxDrawLength:            100,
		DrawHitPoints:            true,
		DrawHitNormals:           true,
		DrawOverlapColliders:     true,
		DrawClosestPointCollider: true,
		DrawPenetrationColliders: true,
	}
}

// Physics is a drawing facade over a physics.Engine.
type Physics struct {
	engine   physics.Engine
	draw     *debugdraw.Drawer
	ignore   *debugdraw.Drawer
	settings Settings
	log      *zap.Logger
}

// New wraps engine. Geometry detail (segments, point and arrow scales)
// comes from style; duration and depth testing come from settings.
func New(engine physics.Engine, sink debugdraw.Sink, style debugdraw.Style, settings Settings, log *zap.Logger) *Physics {
	if log == nil {
		log = zap.NewNop()
	}
	style.Duration = settings.Duration
	style.DepthTest = settings.DepthTest
	d := debugdraw.New(sink, style, log)
	return &Physics{
		engine:   engine,
		draw:     d,
		ignore:   d.WithDuration(settings.IgnoreCollisionDuration),
		settings: settings,
		log:      log,
	}
}

// Engine returns the wrapped engine.
func (p *Physics) Engine() physics.Engine {
	return p.engine
}

// Settings returns the active settings.
func (p *Physics) Settings() Settings {
	return p.settings
}

// Drawer returns the drawer used for query lines.
func (p *Physics) Drawer() *debugdraw.Drawer {
	return p.draw
}

func (p *Physics) color(hit bool) debugdraw.Color {
	if hit {
		return p.settings.HitColor
	}
	return p.settings.NoHitColor
}

// drawLength caps a query distance to MaxDrawLength.
func (p *Physics) drawLength(maxDistance float32) float32 {
	if math32.IsNaN(maxDistance) || maxDistance < 0 {
		return 0
	}
	return math32.Min(maxDistance, p.settings.MaxDrawLength)
}

// drawHitDetail draws the optional hit point and unit hit normal at point.
func (p *Physics) drawHitDetail(point, normal math.Vec3) {
	if p.settings.DrawHitPoints {
		p.draw.Point(point, p.settings.HitColor)
	}
	if p.settings.DrawHitNormals {
		p.draw.Line(point, point.Add(normal), p.settings.HitNormalColor)
	}
}

func (p *Physics) drawColliders(d *debugdraw.Drawer, colliders []*physics.Collider, color debugdraw.Color) {
	d.Shapes(lo.FilterMap(colliders, func(c *physics.Collider, _ int) (wireframe.Shape, bool) {
		if c == nil {
			return wireframe.Shape{}, false
		}
		return c.Shape, true
	}), color)
}

// validHits drops hits without a collider.
func validHits(hits []physics.Hit) []physics.Hit {
	return lo.Filter(hits, func(h physics.Hit, _ int) bool { return h.Valid() })
}

// furthest returns the largest travel over hits, or 0 when there are none.
func furthest(hits []physics.Hit, travel func(physics.Hit) float32) float32 {
	if len(hits) == 0 {
		return 0
	}
	return lo.Max(lo.Map(hits, func(h physics.Hit, _ int) float32 { return travel(h) }))
}

// fillHits sorts hits by distance and copies them into results.
func (p *Physics) fillHits(query string, hits, results []physics.Hit) int {
	physics.SortHits(hits)
	n := copy(results, hits)
	if n < len(hits) {
		p.log.Debug("results buffer full",
			zap.String("query", query),
			zap.Int("hits", len(hits)),
			zap.Int("capacity", len(results)))
	}
	return n
}

func (p *Physics) fillColliders(query string, found, results []*physics.Collider) int {
	n := copy(results, found)
	if n < len(found) {
		p.log.Debug("results buffer full",
			zap.String("query", query),
			zap.Int("colliders", len(found)),
			zap.Int("capacity", len(results)))
	}
	return n
}
