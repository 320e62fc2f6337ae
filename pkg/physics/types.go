package physics

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
	"github.com/google/uuid"

	"github.com/Faultbox/physdebug/pkg/math"
	"github.com/Faultbox/physdebug/pkg/wireframe"
)

// Layer limits.
const (
	MaxLayers          = 32
	DefaultLayer       = 0
	IgnoreRaycastLayer = 2
)

// LayerMask selects layers by bit.
type LayerMask uint32

// Common masks.
const (
	AllLayers            LayerMask = ^LayerMask(0)
	DefaultRaycastLayers LayerMask = ^LayerMask(1 << IgnoreRaycastLayer)
)

// MaskOf returns a mask containing the given layers.
func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l >= 0 && l < MaxLayers {
			m |= 1 << l
		}
	}
	return m
}

// Has reports whether layer is in the mask.
func (m LayerMask) Has(layer int) bool {
	if layer < 0 || layer >= MaxLayers {
		return false
	}
	return m&(1<<layer) != 0
}

// TriggerInteraction controls whether queries report trigger colliders.
type TriggerInteraction int

const (
	// TriggersUseGlobal defers to the engine's setting.
	TriggersUseGlobal TriggerInteraction = iota
	TriggersIgnore
	TriggersCollide
)

// Query holds the filter shared by casts and overlaps.
type Query struct {
	MaxDistance float32
	LayerMask   LayerMask
	Triggers    TriggerInteraction
}

// DefaultQuery is an unbounded cast against the default raycast layers.
func DefaultQuery() Query {
	return Query{MaxDistance: math32.Inf(1), LayerMask: DefaultRaycastLayers, Triggers: TriggersUseGlobal}
}

// DefaultOverlapQuery is an overlap against all layers.
func DefaultOverlapQuery() Query {
	return Query{MaxDistance: math32.Inf(1), LayerMask: AllLayers, Triggers: TriggersUseGlobal}
}

// WithDistance returns q with MaxDistance set.
func (q Query) WithDistance(d float32) Query {
	q.MaxDistance = d
	return q
}

// WithMask returns q with LayerMask set.
func (q Query) WithMask(m LayerMask) Query {
	q.LayerMask = m
	return q
}

// Ray is an origin and a direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at distance t along the normalized direction.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Normalize().Scale(t))
}

// Collider is a shape registered with an engine.
type Collider struct {
	ID      uuid.UUID
	Name    string
	Layer   int
	Trigger bool
	Shape   wireframe.Shape
}

// NewCollider creates a collider on the default layer with a fresh ID.
func NewCollider(name string, shape wireframe.Shape) *Collider {
	return &Collider{ID: uuid.New(), Name: name, Layer: DefaultLayer, Shape: shape}
}

// Position returns the collider's world center.
func (c *Collider) Position() math.Vec3 {
	return c.Shape.Center
}

// Rotation returns the collider's world orientation.
func (c *Collider) Rotation() math.Quat {
	return c.Shape.Orientation
}

// Posed returns the collider's shape moved to position and rotation.
func (c *Collider) Posed(position math.Vec3, rotation math.Quat) wireframe.Shape {
	s := c.Shape
	delta := position.Sub(s.Center)
	switch s.Kind {
	case wireframe.ShapeCapsule:
		// Rotate the endpoints about the center by the change in rotation.
		rel := rotation.Mul(s.Orientation.Conjugate())
		s.Point1 = position.Add(rel.Rotate(s.Point1.Sub(s.Center)))
		s.Point2 = position.Add(rel.Rotate(s.Point2.Sub(s.Center)))
		s.Center = position
		s.Orientation = rotation
		return s
	default:
		s = s.Moved(delta)
		s.Orientation = rotation
		return s
	}
}

func (c *Collider) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}

// Hit describes where a cast touched a collider.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
	Collider *Collider
}

// Valid reports whether the hit refers to a collider.
func (h Hit) Valid() bool {
	return h.Collider != nil
}

// StartedOverlapping reports whether h is the result of a cast that began
// inside a collider: zero distance, zero point, and a normal opposing the
// cast direction.
func (h Hit) StartedOverlapping(direction math.Vec3) bool {
	return h.Distance == 0 &&
		h.Point.IsZero() &&
		h.Normal.ApproxEqual(direction.Normalize().Neg(), 1e-6)
}

// OverlapHit builds the hit reported for a cast that starts inside c.
func OverlapHit(c *Collider, direction math.Vec3) Hit {
	return Hit{Normal: direction.Normalize().Neg(), Collider: c}
}

// SortHits orders hits by ascending distance.
func SortHits(hits []Hit) {
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
}
