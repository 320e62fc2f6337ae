// Package scene is a small reference physics world.
//
// Colliders are signed distance fields built with sdfx. Casts march probe
// spheres along the cast direction, overlaps use alternating projections
// between convex fields, and bodies are integrated with explicit Euler
// steps. It exists to drive the debug wrappers outside a game engine and
// makes no attempt at a full rigid-body solver.
package scene

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/deadsy/sdfx/sdf"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Faultbox/physdebug/internal/picking"
	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/physics"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

// DefaultGravity is the world gravity applied to bodies.
var DefaultGravity = math.Vec3{Y: -9.81}

// MaxCastDistance bounds casts with an infinite max distance.
const MaxCastDistance = 1000

var _ physics.Engine = (*World)(nil)

type entry struct {
	collider *physics.Collider
	field    solid
	body     *Body
}

// solid returns the entry's field at the collider's current pose.
func (e *entry) solid() solid {
	return e.field.placed(e.collider.Shape)
}

func (e *entry) bounds() picking.AABB {
	min, max := e.collider.Shape.Bounds()
	return picking.NewAABB(min, max)
}

type pairKey [2]uuid.UUID

func makePair(a, b uuid.UUID) pairKey {
	if a.String() > b.String() {
		a, b = b, a
	}
	return pairKey{a, b}
}

// World holds colliders and bodies and answers physics queries.
// It is not safe for concurrent use.
type World struct {
	Gravity            math.Vec3
	QueriesHitTriggers bool

	log          *zap.Logger
	entries      []*entry
	byID         map[uuid.UUID]*entry
	bodies       []*Body
	ignoreLayers [physics.MaxLayers]uint32
	ignorePairs  map[pairKey]bool
	elapsed      time.Duration
}

// NewWorld creates an empty world. A nil logger discards logs.
func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		Gravity:            DefaultGravity,
		QueriesHitTriggers: true,
		log:                log,
		byID:               make(map[uuid.UUID]*entry),
		ignorePairs:        make(map[pairKey]bool),
	}
}

// AddCollider registers c. The collider's shape must describe a valid field.
func (w *World) AddCollider(c *physics.Collider) error {
	if c == nil {
		return fmt.Errorf("adding collider: %w", ErrInvalidShape)
	}
	if _, ok := w.byID[c.ID]; ok {
		return fmt.Errorf("collider %s already added", c.Name)
	}
	field, err := newSolid(c.Shape)
	if err != nil {
		return fmt.Errorf("adding collider %s: %w", c.Name, err)
	}
	e := &entry{collider: c, field: field}
	w.entries = append(w.entries, e)
	w.byID[c.ID] = e
	w.log.Debug("collider added",
		zap.String("name", c.Name),
		zap.Stringer("id", c.ID),
		zap.Stringer("kind", c.Shape.Kind),
		zap.Int("layer", c.Layer))
	return nil
}

// AddSphere creates and registers a sphere collider.
func (w *World) AddSphere(name string, center math.Vec3, radius float32) (*physics.Collider, error) {
	return w.add(name, wireframe.SphereShape(center, radius))
}

// AddBox creates and registers a box collider.
func (w *World) AddBox(name string, center, halfExtents math.Vec3, orient math.Quat) (*physics.Collider, error) {
	return w.add(name, wireframe.BoxShape(center, halfExtents, orient))
}

// AddCapsule creates and registers a capsule collider.
func (w *World) AddCapsule(name string, point1, point2 math.Vec3, radius float32) (*physics.Collider, error) {
	return w.add(name, wireframe.CapsuleShape(point1, point2, radius))
}

// AddCompound registers a mesh collider made of the union of parts. Its
// shape carries only the bounds of the parts.
func (w *World) AddCompound(name string, parts ...wireframe.Shape) (*physics.Collider, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("compound %s has no parts: %w", name, ErrInvalidShape)
	}
	min, max := parts[0].Bounds()
	for _, p := range parts[1:] {
		lo, hi := p.Bounds()
		min, max = min.Min(lo), max.Max(hi)
	}
	shape := wireframe.MeshShape(min, max)

	fields := make([]sdf.SDF3, 0, len(parts))
	for _, p := range parts {
		local, err := localSDF(p)
		if err != nil {
			return nil, fmt.Errorf("compound %s: %w", name, err)
		}
		c, r := frameOf(p)
		fields = append(fields, newTransformed(local, c.Sub(shape.Center), r))
	}

	c := physics.NewCollider(name, shape)
	field := solid{local: sdf.Union3D(fields...), center: shape.Center, rot: math.QuatIdentity()}
	e := &entry{collider: c, field: field}
	w.entries = append(w.entries, e)
	w.byID[c.ID] = e
	w.log.Debug("compound added", zap.String("name", name), zap.Int("parts", len(parts)))
	return c, nil
}

func (w *World) add(name string, s wireframe.Shape) (*physics.Collider, error) {
	c := physics.NewCollider(name, s)
	if err := w.AddCollider(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove unregisters c and any body attached to it.
func (w *World) Remove(c *physics.Collider) {
	if c == nil {
		return
	}
	e, ok := w.byID[c.ID]
	if !ok {
		return
	}
	delete(w.byID, c.ID)
	w.entries = lo.Without(w.entries, e)
	if e.body != nil {
		w.bodies = lo.Without(w.bodies, e.body)
	}
}

// Colliders returns every registered collider in insertion order.
func (w *World) Colliders() []*physics.Collider {
	return lo.Map(w.entries, func(e *entry, _ int) *physics.Collider { return e.collider })
}

// Collider looks a collider up by name.
func (w *World) Collider(name string) (*physics.Collider, bool) {
	e, ok := lo.Find(w.entries, func(e *entry) bool { return e.collider.Name == name })
	if !ok {
		return nil, false
	}
	return e.collider, true
}

// Bodies returns every body in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Elapsed returns the total simulated time.
func (w *World) Elapsed() time.Duration {
	return w.elapsed
}

// IgnoreCollision toggles collisions between two colliders.
func (w *World) IgnoreCollision(a, b *physics.Collider, ignore bool) {
	if a == nil || b == nil {
		return
	}
	key := makePair(a.ID, b.ID)
	if ignore {
		w.ignorePairs[key] = true
	} else {
		delete(w.ignorePairs, key)
	}
}

// IgnoreLayerCollision toggles collisions between two layers.
func (w *World) IgnoreLayerCollision(layer1, layer2 int, ignore bool) {
	if !validLayer(layer1) || !validLayer(layer2) {
		w.log.Warn("layer out of range", zap.Int("layer1", layer1), zap.Int("layer2", layer2))
		return
	}
	if ignore {
		w.ignoreLayers[layer1] |= 1 << layer2
		w.ignoreLayers[layer2] |= 1 << layer1
	} else {
		w.ignoreLayers[layer1] &^= 1 << layer2
		w.ignoreLayers[layer2] &^= 1 << layer1
	}
}

// GetIgnoreLayerCollision reports whether collisions between two layers
// are ignored.
func (w *World) GetIgnoreLayerCollision(layer1, layer2 int) bool {
	if !validLayer(layer1) || !validLayer(layer2) {
		return false
	}
	return w.ignoreLayers[layer1]&(1<<layer2) != 0
}

func validLayer(l int) bool {
	return l >= 0 && l < physics.MaxLayers
}

// ignores reports whether a and b never collide.
func (w *World) ignores(a, b *physics.Collider) bool {
	return w.GetIgnoreLayerCollision(a.Layer, b.Layer) || w.ignorePairs[makePair(a.ID, b.ID)]
}

// accepts applies a query's layer and trigger filter.
func (w *World) accepts(c *physics.Collider, q physics.Query) bool {
	if !q.LayerMask.Has(c.Layer) {
		return false
	}
	if !c.Trigger {
		return true
	}
	switch q.Triggers {
	case physics.TriggersIgnore:
		return false
	case physics.TriggersCollide:
		return true
	default:
		return w.QueriesHitTriggers
	}
}

// candidates returns the entries passing q whose bounds touch box.
func (w *World) candidates(q physics.Query, box picking.AABB) []*entry {
	return lo.Filter(w.entries, func(e *entry, _ int) bool {
		return w.accepts(e.collider, q) && e.bounds().Overlaps(box)
	})
}

// castLimit clamps a query distance to MaxCastDistance.
func castLimit(q physics.Query) float32 {
	if math32.IsInf(q.MaxDistance, 1) || q.MaxDistance > MaxCastDistance {
		return MaxCastDistance
	}
	return math32.Max(q.MaxDistance, 0)
}
