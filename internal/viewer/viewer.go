// Package viewer runs the interactive window showing the demo scenario.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/internal/config"
	"github.com/Faultbox/physdebug/internal/demo"
	"github.com/Faultbox/physdebug/internal/engine/camera"
	"github.com/Faultbox/physdebug/internal/engine/debug"
	"github.com/Faultbox/physdebug/internal/engine/input"
	"github.com/Faultbox/physdebug/internal/engine/lines"
	"github.com/Faultbox/physdebug/internal/engine/renderer"
	"github.com/Faultbox/physdebug/internal/engine/window"
	"github.com/Faultbox/physdebug/internal/picking"
	"github.com/Faultbox/physdebug/pkg/physics"
)

// MaxLines bounds the line buffer.
const MaxLines = 1 << 18

// Viewer is the main viewer instance.
type Viewer struct {
	config   *config.Config
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	buffer   *lines.Buffer
	scenario *demo.Scenario
	shots    *debug.Screenshots
	reloads  <-chan *config.Config
	cancel   context.CancelFunc
}

// New creates the window, the renderer and the scenario.
func New(cfg *config.Config, configPath string, log *zap.Logger) (*Viewer, error) {
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v := &Viewer{
		config: cfg,
		log:    log,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		buffer: lines.NewBuffer(MaxLines),
		shots:  debug.NewScreenshots("screenshots", "physview"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The GL context must exist before the renderer.
	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	}, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.scenario, err = demo.New(cfg, v.buffer, demo.DefaultFeatures, log.Named("demo"))
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to build scenario: %w", err)
	}

	if configPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		v.reloads, err = config.Watch(ctx, configPath, log.Named("config"))
		if err != nil {
			cancel()
			log.Warn("config hot reload disabled", zap.Error(err))
		} else {
			v.cancel = cancel
		}
	}

	log.Info("viewer initialized", zap.Stringer("features", v.scenario.Features()))
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		v.beginFrame(dt)

		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handle(event)
		}
		v.applyReload()

		v.update(dt)
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("lines", v.buffer.Len()),
				zap.Int("dropped", v.buffer.Dropped()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
		v.limitFPS(now)
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.cancel != nil {
		v.cancel()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		v.renderer.Resize(event.Width, event.Height)
	case input.EventKeyDown:
		v.handleKey(event.Key)
	case input.EventMouseMove:
		if v.input.IsButtonHeld(sdl.BUTTON_RIGHT) {
			v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
		}
	case input.EventMouseWheel:
		v.camera.HandleZoom(event.Wheel)
	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			v.pick(event.MouseX, event.MouseY)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	if f, ok := featureForKey(key); ok {
		v.scenario.Toggle(f)
		v.window.SetTitle(fmt.Sprintf("%s [%v]", v.config.Window.Title, v.scenario.Features()))
		return
	}
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_F12:
		v.screenshot()
	case sdl.SCANCODE_F11:
		v.captureScaled(2)
	case sdl.SCANCODE_C:
		v.buffer.Clear()
	case sdl.SCANCODE_HOME:
		v.camera = camera.NewOrbitCamera()
	}
}

// featureForKey maps the number row to the demo feature groups.
func featureForKey(key sdl.Scancode) (demo.Feature, bool) {
	list := demo.FeatureList()
	i := int(key) - int(sdl.SCANCODE_1)
	if i < 0 || i >= len(list) {
		return 0, false
	}
	return list[i], true
}

func (v *Viewer) pick(x, y int) {
	w, h := v.window.Size()
	inv := v.camera.ViewProjection(v.renderer.Aspect()).Inverse()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), inv)
	v.scenario.CastFrom(physics.Ray{Origin: ray.Origin, Direction: ray.Direction})
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CapturePixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) captureScaled(scale int) {
	viewProj := v.camera.ViewProjection(v.renderer.Aspect())
	pixels, w, h, err := v.renderer.Capture(v.buffer, viewProj, scale)
	if err != nil {
		v.log.Error("capture failed", zap.Error(err))
		return
	}
	path, err := v.shots.CapturePixels(pixels, w, h)
	if err != nil {
		v.log.Error("capture failed", zap.Error(err))
		return
	}
	v.log.Info("capture saved", zap.String("path", path), zap.Int("scale", scale))
}

func (v *Viewer) applyReload() {
	select {
	case cfg, ok := <-v.reloads:
		if !ok {
			v.reloads = nil
			return
		}
		v.config = cfg
		v.scenario.Reconfigure(cfg)
		v.window.SetVSync(cfg.Window.VSync)
		v.log.Info("config reloaded")
	default:
	}
}

func (v *Viewer) update(dt time.Duration) {
	var forward, right, up float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		v.camera.HandleMovement(forward, right, up)
	}

	v.scenario.Advance(dt)
}

// beginFrame expires the lines shown last frame. It runs before event
// handling so lines drawn by clicks are rendered at least once.
func (v *Viewer) beginFrame(dt time.Duration) {
	v.buffer.Tick(dt)
}

func (v *Viewer) render() {
	v.renderer.Begin()
	v.renderer.DrawBuffer(v.buffer, v.camera.ViewProjection(v.renderer.Aspect()))
	v.renderer.End()
}

func (v *Viewer) limitFPS(frameStart time.Time) {
	if v.config.Window.FPSLimit <= 0 {
		return
	}
	budget := time.Second / time.Duration(v.config.Window.FPSLimit)
	if spent := time.Since(frameStart); spent < budget {
		time.Sleep(budget - spent)
	}
}
