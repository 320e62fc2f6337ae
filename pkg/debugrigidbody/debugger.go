// Package debugrigidbody draws what happens to a rigid body: its velocity,
// the forces and torques applied to it, and the sweeps it performs.
//
// The Add* and query wrappers draw first and then delegate to the body.
package debugrigidbody

import (
	"github.com/chewxy/math32"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/pkg/debugdraw"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

// Debugger draws rigid body activity into a sink.
type Debugger struct {
	draw     *debugdraw.Drawer
	settings Settings
	log      *zap.Logger
}

// New creates a Debugger. Segments and point scale come from style; the
// line lifetime, depth testing and arrow scale come from settings.
func New(sink debugdraw.Sink, style debugdraw.Style, settings Settings, log *zap.Logger) *Debugger {
	if log == nil {
		log = zap.NewNop()
	}
	style.Duration = settings.lineDuration()
	style.DepthTest = settings.DepthTest
	style.ArrowScale = settings.ArrowScale
	return &Debugger{
		draw:     debugdraw.New(sink, style, log),
		settings: settings,
		log:      log,
	}
}

// Settings returns the active settings.
func (d *Debugger) Settings() Settings {
	return d.settings
}

// Drawer returns the underlying drawer.
func (d *Debugger) Drawer() *debugdraw.Drawer {
	return d.draw
}

// ForceModeColor returns the color forces of mode are drawn in.
func (d *Debugger) ForceModeColor(mode physics.ForceMode) debugdraw.Color {
	return d.settings.ForceModeColor(mode)
}

// DrawVelocity draws the body's velocity from its center of mass.
func (d *Debugger) DrawVelocity(b physics.Body) {
	com := b.WorldCenterOfMass()
	d.draw.Vector(com, com.Add(b.Velocity()), d.settings.VelocityColor)
}

// DrawForce draws force applied at origin. Force and Impulse are divided by
// the body mass when ScaleForceUsingMass is set.
func (d *Debugger) DrawForce(b physics.Body, origin, force math.Vec3, mode physics.ForceMode) {
	v := force
	if d.settings.ScaleForceUsingMass && mode.UsesMass() {
		v = force.Div(b.Mass())
	}
	if v.Length() < d.settings.MinForceVectorLength {
		return
	}
	d.draw.Vector(origin, origin.Add(v), d.ForceModeColor(mode))
}

// DrawTorque draws torque as three quarter arcs around origin in the plane
// perpendicular to the torque axis, the last one with an arrow head.
// A zero torque draws nothing.
func (d *Debugger) DrawTorque(b physics.Body, origin, torque math.Vec3, mode physics.ForceMode) {
	if torque.IsZero() {
		return
	}
	look := math.QuatLookRotation(torque, torque.Cross(math.Up))
	scale := torque.Length()
	if d.settings.ScaleForceUsingMass {
		scale /= b.Mass()
	}
	scale = math32.Max(scale, d.settings.MinTorqueDrawScale)

	right := look.Rotate(math.Right).Scale(scale)
	up := look.Rotate(math.Up).Scale(scale)
	color := d.ForceModeColor(mode)
	d.draw.AngleBetween(origin, right, up, color, false)
	d.draw.AngleBetween(origin, up, right.Neg(), color, false)
	d.draw.AngleBetween(origin, right.Neg(), up.Neg(), color, true)
}

// DrawExplosionForce draws the explosion volume lowered by upwardsModifier,
// a line from it to the body's center of mass, and the resulting force.
func (d *Debugger) DrawExplosionForce(b physics.Body, force float32, position math.Vec3, radius, upwardsModifier float32, mode physics.ForceMode) {
	pos := position
	pos.Y -= upwardsModifier
	if d.settings.DrawExplosionSphere {
		if radius > 0 {
			d.draw.Sphere(pos, radius, math.Up, d.settings.ExplosionColor)
		} else {
			d.draw.Point(pos, d.settings.ExplosionColor)
		}
	}
	com := b.WorldCenterOfMass()
	d.draw.Line(pos, com, d.settings.ExplosionColor)
	d.DrawForce(b, com, com.Sub(pos).Normalize().Scale(force), mode)
}

// AddForce draws force at the center of mass and applies it.
func (d *Debugger) AddForce(b physics.Body, force math.Vec3, mode physics.ForceMode) {
	d.DrawForce(b, b.WorldCenterOfMass(), force, mode)
	b.AddForce(force, mode)
}

// AddForceAtPosition draws force at position and applies it there.
func (d *Debugger) AddForceAtPosition(b physics.Body, force, position math.Vec3, mode physics.ForceMode) {
	d.DrawForce(b, position, force, mode)
	b.AddForceAtPosition(force, position, mode)
}

// AddRelativeForce draws a force given in body space and applies it.
func (d *Debugger) AddRelativeForce(b physics.Body, force math.Vec3, mode physics.ForceMode) {
	d.DrawForce(b, b.WorldCenterOfMass(), b.Rotation().Rotate(force), mode)
	b.AddRelativeForce(force, mode)
}

// AddTorque draws torque around the center of mass and applies it.
func (d *Debugger) AddTorque(b physics.Body, torque math.Vec3, mode physics.ForceMode) {
	d.DrawTorque(b, b.WorldCenterOfMass(), torque, mode)
	b.AddTorque(torque, mode)
}

// AddRelativeTorque draws a torque given in body space and applies it.
func (d *Debugger) AddRelativeTorque(b physics.Body, torque math.Vec3, mode physics.ForceMode) {
	d.DrawTorque(b, b.WorldCenterOfMass(), b.Rotation().Rotate(torque), mode)
	b.AddRelativeTorque(torque, mode)
}

// AddExplosionForce draws the explosion and applies it.
func (d *Debugger) AddExplosionForce(b physics.Body, force float32, position math.Vec3, radius, upwardsModifier float32, mode physics.ForceMode) {
	d.DrawExplosionForce(b, force, position, radius, upwardsModifier, mode)
	b.AddExplosionForce(force, position, radius, upwardsModifier, mode)
}

// Velocity draws and returns the body's velocity.
func (d *Debugger) Velocity(b physics.Body) math.Vec3 {
	d.DrawVelocity(b)
	return b.Velocity()
}

// ClosestPointOnBounds returns the point on the body's bounds closest to p
// and draws a line from p to it.
func (d *Debugger) ClosestPointOnBounds(b physics.Body, p math.Vec3) math.Vec3 {
	q := b.ClosestPointOnBounds(p)
	d.draw.Line(p, q, d.settings.QueryColor)
	d.draw.Point(q, d.settings.QueryColor)
	return q
}

// PointVelocity returns and draws the velocity of the body at a world point.
func (d *Debugger) PointVelocity(b physics.Body, worldPoint math.Vec3) math.Vec3 {
	v := b.PointVelocity(worldPoint)
	d.drawPointVelocity(worldPoint, v)
	return v
}

// RelativePointVelocity returns and draws the velocity of the body at a
// point given in body space.
func (d *Debugger) RelativePointVelocity(b physics.Body, localPoint math.Vec3) math.Vec3 {
	v := b.RelativePointVelocity(localPoint)
	d.drawPointVelocity(b.Position().Add(b.Rotation().Rotate(localPoint)), v)
	return v
}

func (d *Debugger) drawPointVelocity(p, v math.Vec3) {
	d.draw.Point(p, d.settings.QueryColor)
	d.draw.Vector(p, p.Add(v), d.settings.VelocityColor)
}

// SweepTest sweeps the body's collider and draws the swept volume up to the
// hit, or up to the capped max distance on a miss.
func (d *Debugger) SweepTest(b physics.Body, direction math.Vec3, maxDistance float32) (physics.Hit, bool) {
	hit, ok := b.SweepTest(direction, maxDistance)
	shape, drawable := d.bodyShape(b)
	if !drawable {
		return hit, ok
	}
	if !ok {
		d.sweep(shape, direction, d.drawLength(maxDistance), d.settings.NoHitColor)
		return hit, ok
	}
	d.sweep(shape, direction, hit.Distance, d.settings.HitColor)
	d.drawHit(shape, direction, hit)
	return hit, ok
}

// SweepTestAll sweeps the body's collider and draws every hit. The part of
// the sweep past the furthest hit is drawn in NoHitColor.
func (d *Debugger) SweepTestAll(b physics.Body, direction math.Vec3, maxDistance float32) []physics.Hit {
	hits := b.SweepTestAll(direction, maxDistance)
	shape, drawable := d.bodyShape(b)
	if !drawable {
		return hits
	}
	length := d.drawLength(maxDistance)
	if len(hits) == 0 {
		d.sweep(shape, direction, length, d.settings.NoHitColor)
		return hits
	}
	far := lo.Max(lo.Map(hits, func(h physics.Hit, _ int) float32 { return h.Distance }))
	d.sweep(shape, direction, far, d.settings.HitColor)
	if length > far {
		rest := shape.Moved(direction.Normalize().Scale(far))
		d.sweep(rest, direction, length-far, d.settings.NoHitColor)
	}
	for _, h := range hits {
		d.drawHit(shape, direction, h)
	}
	return hits
}

func (d *Debugger) bodyShape(b physics.Body) (wireframe.Shape, bool) {
	c := b.Collider()
	if c == nil {
		d.log.Debug("body has no collider, sweep not drawn")
		return wireframe.Shape{}, false
	}
	return c.Shape, true
}

func (d *Debugger) drawLength(maxDistance float32) float32 {
	if math32.IsNaN(maxDistance) || maxDistance < 0 {
		return 0
	}
	return math32.Min(maxDistance, d.settings.MaxDrawSweepDistance)
}

// sweep draws shape moved distance along direction, or the shape alone when
// it does not move.
func (d *Debugger) sweep(shape wireframe.Shape, direction math.Vec3, distance float32, color debugdraw.Color) {
	if distance <= 0 {
		_ = d.draw.Shape(shape, color, true)
		return
	}
	d.draw.ShapeCast(shape, direction, distance, color)
}

func (d *Debugger) drawHit(shape wireframe.Shape, direction math.Vec3, h physics.Hit) {
	point := h.Point
	if h.StartedOverlapping(direction) {
		point = shape.Center
	}
	d.draw.Point(point, d.settings.HitColor)
	d.draw.VectorDir(point, h.Normal, 1, d.settings.HitColor)
}
