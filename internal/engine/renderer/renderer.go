// Package renderer draws debug lines with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/internal/engine/framebuffer"
	"github.com/Faultbox/physdebug/internal/engine/lines"
	"github.com/Faultbox/physdebug/internal/engine/shader"
	"github.com/Faultbox/physdebug/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws packed line vertices as GL_LINES.
type Renderer struct {
	config  Config
	log     *zap.Logger
	program *shader.Program

	vao uint32
	vbo uint32
	// capacity of vbo in floats
	capacity int
	scratch  []float32

	offscreen *framebuffer.Framebuffer
}

// New creates a renderer. The OpenGL context must already exist.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{config: cfg, log: log}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = shader.New(shader.LineVertex, shader.LineFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}

	r.createBuffers()
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(lines.FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("line buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
}

// Close frees GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.offscreen != nil {
		r.offscreen.Destroy()
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawBuffer draws the depth-tested lines of buf first and the overlay
// lines after them.
func (r *Renderer) DrawBuffer(buf *lines.Buffer, viewProj math.Mat4) {
	r.scratch = buf.Vertices(r.scratch, true)
	gl.Enable(gl.DEPTH_TEST)
	r.DrawLines(r.scratch, viewProj)

	r.scratch = buf.Vertices(r.scratch, false)
	gl.Disable(gl.DEPTH_TEST)
	r.DrawLines(r.scratch, viewProj)
}

// DrawLines uploads packed vertices and draws them as GL_LINES.
func (r *Renderer) DrawLines(vertices []float32, viewProj math.Mat4) {
	if len(vertices) == 0 {
		return
	}
	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(vertices) > r.capacity {
		r.capacity = 2 * len(vertices)
		gl.BufferData(gl.ARRAY_BUFFER, r.capacity*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, unsafe.Pointer(&vertices[0]))
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/lines.FloatsPerVertex))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// ReadPixels returns the framebuffer as RGBA bytes, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Capture renders buf offscreen at scale times the viewport size and
// returns the pixels, bottom row first.
func (r *Renderer) Capture(buf *lines.Buffer, viewProj math.Mat4, scale int) ([]byte, int, int, error) {
	if scale < 1 {
		scale = 1
	}
	w, h := int32(r.config.Width*scale), int32(r.config.Height*scale)
	if r.offscreen == nil {
		fb, err := framebuffer.New(w, h)
		if err != nil {
			return nil, 0, 0, err
		}
		r.offscreen = fb
	}
	r.offscreen.Resize(w, h)

	restore := r.offscreen.Bind()
	r.Begin()
	r.DrawBuffer(buf, viewProj)
	pixels := r.offscreen.ReadPixels()
	restore()

	fw, fh := r.offscreen.Size()
	r.log.Debug("offscreen capture", zap.Int32("width", fw), zap.Int32("height", fh))
	return pixels, int(fw), int(fh), nil
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.Flush()
}
