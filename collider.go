package impulse

import "math"

// ColliderID identifies a collider inside a World registry. Pair keys are
// canonicalized by id ordering, so ids are stable and monotonic.
type ColliderID uint64

const allLayers uint32 = 0xFFFFFFFF

// Collider attaches a shape to a body. It holds the surface material, the
// trigger flag, and the layer filter, and caches its world-space bounds.
// The owning body is referenced by id and resolved through the World
// registry, never by a stored pointer.
type Collider struct {
	id     ColliderID
	bodyID BodyID
	world  *World

	shape     Shape
	Offset    Vector2
	IsTrigger bool
	Material  Material

	layer     uint32
	layerMask uint32

	bounds        AABB
	boundsDirty   bool
	boundsVersion uint64
}

// NewCollider creates an unregistered collider with the default material and
// a mask that collides with every layer. Register with World.AddCollider.
func NewCollider(shape Shape) *Collider {
	return &Collider{
		shape:       sanitizeShape(shape),
		Material:    DefaultMaterial(),
		layerMask:   allLayers,
		boundsDirty: true,
	}
}

func sanitizeShape(s Shape) Shape {
	s.Radius = clampDimension(s.Radius)
	s.Size.X = clampDimension(s.Size.X)
	s.Size.Y = clampDimension(s.Size.Y)
	return s
}

func (c *Collider) ID() ColliderID { return c.id }
func (c *Collider) BodyID() BodyID { return c.bodyID }
func (c *Collider) Shape() Shape   { return c.shape }

// Body resolves the owning body through the World registry; nil when the
// collider is unregistered or the body has been removed.
func (c *Collider) Body() *RigidBody {
	if c.world == nil {
		return nil
	}
	return c.world.Body(c.bodyID)
}

func (c *Collider) Layer() uint32 { return c.layer }

// SetLayer assigns the collision layer, clamped to 0-31.
func (c *Collider) SetLayer(layer uint32) {
	if layer > 31 {
		layer = 31
	}
	c.layer = layer
}

func (c *Collider) LayerMask() uint32        { return c.layerMask }
func (c *Collider) SetLayerMask(mask uint32) { c.layerMask = mask }

// CanCollideWith is the bidirectional mask test: each side's mask must admit
// the other side's layer.
func (c *Collider) CanCollideWith(other *Collider) bool {
	return c.layerMask&(1<<other.layer) != 0 &&
		other.layerMask&(1<<c.layer) != 0
}

// SetRadius resizes a circle collider and invalidates the cached bounds.
// Ignored for boxes. Non-positive values are clamped.
func (c *Collider) SetRadius(radius float64) {
	if c.shape.Kind != ShapeCircle {
		return
	}
	c.shape.Radius = clampDimension(radius)
	c.InvalidateBounds()
}

// SetSize resizes a box collider and invalidates the cached bounds. Ignored
// for circles. Non-positive values are clamped.
func (c *Collider) SetSize(width, height float64) {
	if c.shape.Kind != ShapeBox {
		return
	}
	c.shape.Size = Vector2{X: clampDimension(width), Y: clampDimension(height)}
	c.InvalidateBounds()
}

func (c *Collider) InvalidateBounds() {
	c.boundsDirty = true
}

// Bounds returns the world-space AABB, recomputing it only when the shape or
// the owner pose changed since the last call. For a rotated box this is the
// enclosing axis-aligned box, which is what the broad phase needs. If the
// owner is gone the last cached value is returned.
func (c *Collider) Bounds() AABB {
	b := c.Body()
	if b == nil {
		return c.bounds
	}
	if !c.boundsDirty && c.boundsVersion == b.version {
		return c.bounds
	}
	ws := c.resolveShape(b.transform)
	c.bounds = ws.bounds()
	c.boundsDirty = false
	c.boundsVersion = b.version
	return c.bounds
}

// worldShape resolves the collider into world space; false when the owner is
// not resolvable.
func (c *Collider) worldShape() (worldShape, bool) {
	b := c.Body()
	if b == nil {
		return worldShape{}, false
	}
	return c.resolveShape(b.transform), true
}

func (c *Collider) resolveShape(t Transform) worldShape {
	center := t.Apply(c.Offset)
	sx := math.Abs(t.Scale.X)
	sy := math.Abs(t.Scale.Y)
	switch c.shape.Kind {
	case ShapeCircle:
		// Circles stay circles: non-uniform scale takes the larger axis.
		return worldShape{
			kind:   ShapeCircle,
			center: center,
			radius: clampDimension(c.shape.Radius * math.Max(sx, sy)),
		}
	default:
		return worldShape{
			kind:   ShapeBox,
			center: center,
			size: Vector2{
				X: clampDimension(c.shape.Size.X * sx),
				Y: clampDimension(c.shape.Size.Y * sy),
			},
			rotation: t.Rotation,
		}
	}
}

// Overlaps runs the bounds fast-fail followed by the exact narrow-phase test.
// It is purely geometric; layer filtering is a separate concern.
func (c *Collider) Overlaps(other *Collider) bool {
	if !c.Bounds().Overlaps(other.Bounds()) {
		return false
	}
	wsA, okA := c.worldShape()
	wsB, okB := other.worldShape()
	if !okA || !okB {
		return false
	}
	_, hit := collideShapes(wsA, wsB)
	return hit
}

func (c *Collider) ContainsPoint(p Vector2) bool {
	ws, ok := c.worldShape()
	if !ok {
		return false
	}
	return shapeContainsPoint(ws, p)
}

// ClosestPoint returns the point on (or inside) the collider nearest to p.
func (c *Collider) ClosestPoint(p Vector2) Vector2 {
	ws, ok := c.worldShape()
	if !ok {
		return p
	}
	return shapeClosestPoint(ws, p)
}

// Raycast intersects a ray with this collider. dir need not be normalized.
func (c *Collider) Raycast(origin, dir Vector2, maxDist float64) (RaycastHit, bool) {
	ws, ok := c.worldShape()
	if !ok {
		return RaycastHit{}, false
	}
	hit, ok := shapeRaycast(ws, origin, dir, maxDist)
	if !ok {
		return RaycastHit{}, false
	}
	hit.Collider = c
	return hit, true
}
