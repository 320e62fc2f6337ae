// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/physdebug/internal/logger"
	"github.com/Faultbox/physdebug/pkg/debugdraw"
)

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window" toml:"window"`
	Draw      DrawConfig      `yaml:"draw" toml:"draw"`
	Physics   PhysicsConfig   `yaml:"physics" toml:"physics"`
	Rigidbody RigidbodyConfig `yaml:"rigidbody" toml:"rigidbody"`
	Vector    VectorConfig    `yaml:"vector" toml:"vector"`
	Scene     SceneConfig     `yaml:"scene" toml:"scene"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title    string `yaml:"title" toml:"title"`
	Width    int    `yaml:"width" toml:"width"`
	Height   int    `yaml:"height" toml:"height"`
	VSync    bool   `yaml:"vsync" toml:"vsync"`
	FPSLimit int    `yaml:"fps_limit" toml:"fps_limit"`
}

// DrawConfig holds the shared line style.
type DrawConfig struct {
	Segments   int      `yaml:"segments" toml:"segments"`
	PointScale float32  `yaml:"point_scale" toml:"point_scale"`
	ArrowScale float32  `yaml:"arrow_scale" toml:"arrow_scale"`
	Duration   Duration `yaml:"duration" toml:"duration"`
	DepthTest  bool     `yaml:"depth_test" toml:"depth_test"`
	Grid       bool     `yaml:"grid" toml:"grid"`
}

// PhysicsConfig holds query visualization settings.
type PhysicsConfig struct {
	HitColor                 debugdraw.Color `yaml:"hit_color" toml:"hit_color"`
	NoHitColor               debugdraw.Color `yaml:"no_hit_color" toml:"no_hit_color"`
	HitNormalColor           debugdraw.Color `yaml:"hit_normal_color" toml:"hit_normal_color"`
	MaxDrawLength            float32         `yaml:"max_draw_length" toml:"max_draw_length"`
	IgnoreCollisionDuration  Duration        `yaml:"ignore_collision_duration" toml:"ignore_collision_duration"`
	DrawHitPoints            bool            `yaml:"draw_hit_points" toml:"draw_hit_points"`
	DrawHitNormals           bool            `yaml:"draw_hit_normals" toml:"draw_hit_normals"`
	DrawOverlapColliders     bool            `yaml:"draw_overlap_colliders" toml:"draw_overlap_colliders"`
	DrawClosestPointCollider bool            `yaml:"draw_closest_point_collider" toml:"draw_closest_point_collider"`
	DrawPenetrationColliders bool            `yaml:"draw_penetration_colliders" toml:"draw_penetration_colliders"`
}

// RigidbodyConfig holds force and torque visualization settings.
type RigidbodyConfig struct {
	DrawExplosionSphere  bool     `yaml:"draw_explosion_sphere" toml:"draw_explosion_sphere"`
	ScaleForceUsingMass  bool     `yaml:"scale_force_using_mass" toml:"scale_force_using_mass"`
	MinForceVectorLength float32  `yaml:"min_force_vector_length" toml:"min_force_vector_length"`
	MinTorqueDrawScale   float32  `yaml:"min_torque_draw_scale" toml:"min_torque_draw_scale"`
	MaxDrawSweepDistance float32  `yaml:"max_draw_sweep_distance" toml:"max_draw_sweep_distance"`
	DrawWithFixedStep    bool     `yaml:"draw_with_fixed_step" toml:"draw_with_fixed_step"`
	Duration             Duration `yaml:"duration" toml:"duration"`
}

// VectorConfig holds vector math visualization settings.
type VectorConfig struct {
	ShowOperands    bool            `yaml:"show_operands" toml:"show_operands"`
	ShowResult      bool            `yaml:"show_result" toml:"show_result"`
	Arrows          bool            `yaml:"arrows" toml:"arrows"`
	DotAsProjection bool            `yaml:"dot_as_projection" toml:"dot_as_projection"`
	ColorA          debugdraw.Color `yaml:"color_a" toml:"color_a"`
	ColorB          debugdraw.Color `yaml:"color_b" toml:"color_b"`
	ResultColor     debugdraw.Color `yaml:"result_color" toml:"result_color"`
}

// SceneConfig holds reference world settings.
type SceneConfig struct {
	Gravity            float32  `yaml:"gravity" toml:"gravity"`
	FixedStep          Duration `yaml:"fixed_step" toml:"fixed_step"`
	QueriesHitTriggers bool     `yaml:"queries_hit_triggers" toml:"queries_hit_triggers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "physview",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Draw: DrawConfig{
			Segments:   4,
			PointScale: 0.05,
			ArrowScale: 0.1,
			Duration:   Duration(debugdraw.MinDuration),
			DepthTest:  true,
			Grid:       true,
		},
		Physics: PhysicsConfig{
			HitColor:                 debugdraw.Green,
			NoHitColor:               debugdraw.Red,
			HitNormalColor:           debugdraw.Blue,
			MaxDrawLength:            100,
			IgnoreCollisionDuration:  Duration(time.Second),
			DrawHitPoints:            true,
			DrawHitNormals:           true,
			DrawOverlapColliders:     true,
			DrawClosestPointCollider: true,
			DrawPenetrationColliders: true,
		},
		Rigidbody: RigidbodyConfig{
			DrawExplosionSphere:  true,
			ScaleForceUsingMass:  true,
			MinTorqueDrawScale:   1,
			MaxDrawSweepDistance: 10,
			DrawWithFixedStep:    true,
			Duration:             Duration(20 * time.Millisecond),
		},
		Vector: VectorConfig{
			ShowOperands:    true,
			ShowResult:      true,
			Arrows:          true,
			DotAsProjection: true,
			ColorA:          debugdraw.Yellow,
			ColorB:          debugdraw.Blue,
			ResultColor:     debugdraw.Green,
		},
		Scene: SceneConfig{
			Gravity:            -9.81,
			FixedStep:          Duration(20 * time.Millisecond),
			QueriesHitTriggers: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings no component can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Scene.FixedStep <= 0 {
		errs = append(errs, fmt.Errorf("fixed step %v must be positive", c.Scene.FixedStep))
	}
	if c.Physics.MaxDrawLength < 0 {
		errs = append(errs, fmt.Errorf("max draw length %v must not be negative", c.Physics.MaxDrawLength))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
