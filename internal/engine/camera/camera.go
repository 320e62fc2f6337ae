// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/physdebug/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates around Center.
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera framing a scene a few units across.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        15,
		RotationX:       0.5,
		RotationY:       0.6,
		MinDistance:     1,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            math32.Pi / 4,
		Near:            0.05,
		Far:             2000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosX := math32.Cos(c.RotationX)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cosX * math32.Sin(c.RotationY),
		Y: c.Distance * math32.Sin(c.RotationX),
		Z: c.Distance * cosX * math32.Cos(c.RotationY),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// ProjectionMatrix returns the perspective projection for aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation from a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance from a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point in the camera's horizontal frame.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01

	sinY, cosY := math32.Sincos(c.RotationY)
	c.Center.X += (-sinY*forward + cosY*right) * speed
	c.Center.Z += (-cosY*forward - sinY*right) * speed
	c.Center.Y += up * speed
}

// FitToBounds centers the camera on a bounding box and backs off until it
// fits the view.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Length() / 2
	c.Distance = math.Clamp(radius/math32.Sin(c.FovY/2), c.MinDistance, c.MaxDistance)
}
