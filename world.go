package impulse

import "math"

// Positional correction constants. Each position iteration pushes an
// overlapping pair apart by a fraction of the penetration beyond the slop,
// split by inverse mass; the remaining depth is corrected on later iterations
// and steps. Fixed on purpose.
const (
	correctionSlop    = 0.01
	correctionPercent = 0.8
)

// World is one simulation instance. Construct explicitly with NewWorld and
// pass it where needed; there is no package-level singleton. All methods must
// be called from a single goroutine — the step pipeline is strictly
// sequential and gains nothing from finer-grained sharing.
type World struct {
	cfg Config
	log Logger

	bodies        map[BodyID]*RigidBody
	bodyOrder     []BodyID
	colliders     map[ColliderID]*Collider
	colliderOrder []ColliderID

	grid      *SpatialGrid
	gridDirty bool
	tracker   *contactTracker
	bus       *eventBus

	nextBodyID     BodyID
	nextColliderID ColliderID

	accumulator float64
	alpha       float64
	simTime     float64

	stepCount    uint64
	contactCount int
}

func NewWorld(cfg Config) *World {
	cfg.sanitize()
	return &World{
		cfg:       cfg,
		log:       NewNopLogger(),
		bodies:    make(map[BodyID]*RigidBody),
		colliders: make(map[ColliderID]*Collider),
		grid:      NewSpatialGrid(cfg.CellSize),
		tracker:   newContactTracker(),
		bus:       newEventBus(),
	}
}

// SetLogger replaces the world's logger. Passing nil restores the nop logger.
func (w *World) SetLogger(l Logger) {
	if l == nil {
		l = NewNopLogger()
	}
	w.log = l
}

func (w *World) Gravity() Vector2 { return w.cfg.Gravity }

func (w *World) SetGravity(g Vector2) { w.cfg.Gravity = g }

func (w *World) TimeStep() float64 { return w.cfg.TimeStep }

// SetTimeStep clamps non-positive or absurd values instead of failing.
func (w *World) SetTimeStep(dt float64) {
	w.cfg.TimeStep = dt
	w.cfg.sanitize()
}

// Body resolves a body id; nil if unknown.
func (w *World) Body(id BodyID) *RigidBody {
	return w.bodies[id]
}

// AddBody registers a body and assigns its id. Adding the same body twice is
// a no-op.
func (w *World) AddBody(b *RigidBody) BodyID {
	if b == nil {
		return 0
	}
	if b.id != 0 {
		if w.bodies[b.id] == b {
			return b.id
		}
	}
	w.nextBodyID++
	b.id = w.nextBodyID
	w.bodies[b.id] = b
	w.bodyOrder = append(w.bodyOrder, b.id)
	return b.id
}

// RemoveBody deregisters a body and every collider attached to it. Safe to
// call with an unknown body.
func (w *World) RemoveBody(b *RigidBody) {
	if b == nil || w.bodies[b.id] != b {
		return
	}
	var attached []*Collider
	for _, id := range w.colliderOrder {
		if c := w.colliders[id]; c != nil && c.bodyID == b.id {
			attached = append(attached, c)
		}
	}
	for _, c := range attached {
		w.RemoveCollider(c)
	}
	delete(w.bodies, b.id)
	w.bodyOrder = removeID(w.bodyOrder, b.id)
	b.id = 0
}

// AddCollider attaches a collider to a registered body and registers it.
// Returns the collider for chaining.
func (w *World) AddCollider(owner *RigidBody, c *Collider) *Collider {
	if owner == nil || c == nil || w.bodies[owner.id] != owner {
		return c
	}
	if c.world == w && w.colliders[c.id] == c {
		return c
	}
	w.nextColliderID++
	c.id = w.nextColliderID
	c.bodyID = owner.id
	c.world = w
	c.InvalidateBounds()
	w.colliders[c.id] = c
	w.colliderOrder = append(w.colliderOrder, c.id)
	w.gridDirty = true
	return c
}

// RemoveCollider deregisters a collider. Tracked pairs involving it are
// dropped without emitting exit events; the owner's destroy sequence is
// expected to deregister before tearing the entity down.
func (w *World) RemoveCollider(c *Collider) {
	if c == nil || w.colliders[c.id] != c {
		return
	}
	w.tracker.forget(c.id)
	delete(w.colliders, c.id)
	w.colliderOrder = removeID(w.colliderOrder, c.id)
	c.world = nil
	w.gridDirty = true
}

func removeID[T comparable](ids []T, id T) []T {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Stats is a snapshot of simulation counters.
type Stats struct {
	Steps     uint64
	Bodies    int
	Colliders int
	// Contacts is the contact count of the most recent step.
	Contacts int
}

func (w *World) Stats() Stats {
	return Stats{
		Steps:     w.stepCount,
		Bodies:    len(w.bodies),
		Colliders: len(w.colliders),
		Contacts:  w.contactCount,
	}
}

// Update advances the simulation by one rendered frame. The frame delta is
// clamped, accumulated, and converted into zero or more fixed steps. The
// return value is the interpolation alpha in [0, 1): the fraction of a step
// left in the accumulator for the renderer to interpolate with.
func (w *World) Update(frameDelta float64) float64 {
	if frameDelta < 0 {
		frameDelta = 0
	}
	if frameDelta > w.cfg.MaxFrameDelta {
		frameDelta = w.cfg.MaxFrameDelta
	}
	w.accumulator += frameDelta

	dt := w.cfg.TimeStep
	for w.accumulator >= dt {
		w.step(dt)
		w.accumulator -= dt
	}
	w.alpha = w.accumulator / dt
	return w.alpha
}

// Alpha returns the interpolation fraction reported by the last Update.
func (w *World) Alpha() float64 { return w.alpha }

// step runs one fixed simulation step: forces, velocity integration,
// detection, velocity iterations, position integration, position iterations,
// grid refresh, event diffing. Stages run strictly in order.
func (w *World) step(dt float64) {
	w.applyForces()
	w.integrateVelocities(dt)

	contacts, ordered := w.detectContacts()
	w.contactCount = len(ordered)

	for i := 0; i < w.cfg.VelocityIterations; i++ {
		for _, c := range ordered {
			w.solveVelocity(c)
		}
	}

	w.integratePositions(dt)

	for i := 0; i < w.cfg.PositionIterations; i++ {
		for _, c := range ordered {
			w.correctPosition(c)
		}
	}

	w.refreshGrid()

	w.simTime += dt
	w.stepCount++
	enters, stays, exits := w.tracker.update(w.simTime, contacts)
	w.emit(enters, evCollisionEnter, evTriggerEnter)
	w.emit(stays, evCollisionStay, evTriggerStay)
	w.emit(exits, evCollisionExit, evTriggerExit)

	if w.log.DebugEnabled() {
		w.log.Debugf("step %d: %d contacts, %d enter, %d stay, %d exit",
			w.stepCount, len(ordered), len(enters), len(stays), len(exits))
	}
}

func (w *World) applyForces() {
	for _, id := range w.bodyOrder {
		b := w.bodies[id]
		if b == nil || b.bodyType != BodyDynamic {
			continue
		}
		b.force = b.force.Add(w.cfg.Gravity.Scale(b.mass))
	}
}

func (w *World) integrateVelocities(dt float64) {
	for _, id := range w.bodyOrder {
		b := w.bodies[id]
		if b == nil {
			continue
		}
		if b.bodyType == BodyDynamic {
			b.velocity = b.velocity.Add(b.force.Scale(b.invMass * dt))
		}
		b.clearForces()
	}
}

// detectContacts runs broad phase then narrow phase and builds the step's
// contact set. Non-trigger static-static pairs are skipped outright (both
// inverse masses are zero, nothing to resolve); layer masks filter pairs
// before any geometry runs.
func (w *World) detectContacts() (map[PairKey]*Contact, []*Contact) {
	if w.gridDirty {
		w.refreshGrid()
	}

	contacts := make(map[PairKey]*Contact)
	var ordered []*Contact

	for _, pair := range w.grid.CandidatePairs() {
		a, b := pair[0], pair[1]

		bodyA, bodyB := a.Body(), b.Body()
		if bodyA == nil || bodyB == nil {
			continue
		}

		trigger := a.IsTrigger || b.IsTrigger
		if bodyA.bodyType == BodyStatic && bodyB.bodyType == BodyStatic && !trigger {
			continue
		}
		if !a.CanCollideWith(b) {
			continue
		}
		if !a.Bounds().Overlaps(b.Bounds()) {
			continue
		}

		wsA, okA := a.worldShape()
		wsB, okB := b.worldShape()
		if !okA || !okB {
			continue
		}
		sep, hit := collideShapes(wsA, wsB)
		if !hit {
			continue
		}

		friction, restitution := CombineMaterials(a.Material, b.Material)
		c := &Contact{
			A:                a,
			B:                b,
			Point:            sep.PointOnA.Lerp(sep.PointOnB, 0.5),
			Normal:           sep.Normal,
			Depth:            sep.Depth,
			RelativeVelocity: bodyB.velocity.Sub(bodyA.velocity),
			Friction:         friction,
			Restitution:      restitution,
			Trigger:          trigger,
			Time:             w.simTime,
		}
		contacts[c.key()] = c
		ordered = append(ordered, c)
	}

	return contacts, ordered
}

// solveVelocity applies one normal-impulse pass plus Coulomb-clamped friction
// to a contact. Trigger contacts and pairs with no finite mass are left
// untouched; separating pairs are skipped.
func (w *World) solveVelocity(c *Contact) {
	if c.Trigger {
		return
	}
	bodyA, bodyB := c.A.Body(), c.B.Body()
	if bodyA == nil || bodyB == nil {
		return
	}
	invSum := bodyA.invMass + bodyB.invMass
	if invSum == 0 {
		return
	}

	rv := bodyB.velocity.Sub(bodyA.velocity)
	vn := rv.Dot(c.Normal)
	if vn > 0 {
		return
	}

	j := -(1 + c.Restitution) * vn / invSum
	impulse := c.Normal.Scale(j)
	bodyA.velocity = bodyA.velocity.Sub(impulse.Scale(bodyA.invMass))
	bodyB.velocity = bodyB.velocity.Add(impulse.Scale(bodyB.invMass))
	c.Impulse += j

	// Friction along the tangent, clamped to the friction cone.
	rv = bodyB.velocity.Sub(bodyA.velocity)
	tangent := rv.Sub(c.Normal.Scale(rv.Dot(c.Normal)))
	if tangent.LenSqr() < 1e-12 {
		return
	}
	tangent = tangent.Normalized()

	jt := -rv.Dot(tangent) / invSum
	maxFriction := c.Friction * j
	if jt > maxFriction {
		jt = maxFriction
	} else if jt < -maxFriction {
		jt = -maxFriction
	}
	frictionImpulse := tangent.Scale(jt)
	bodyA.velocity = bodyA.velocity.Sub(frictionImpulse.Scale(bodyA.invMass))
	bodyB.velocity = bodyB.velocity.Add(frictionImpulse.Scale(bodyB.invMass))
}

func (w *World) integratePositions(dt float64) {
	for _, id := range w.bodyOrder {
		b := w.bodies[id]
		if b == nil || b.bodyType == BodyStatic {
			continue
		}
		if b.velocity.X == 0 && b.velocity.Y == 0 {
			continue
		}
		b.Translate(b.velocity.Scale(dt))
	}
}

// correctPosition applies one Baumgarte-style push-apart pass. The tracked
// depth is reduced by the separation actually applied so later passes
// converge instead of over-correcting.
func (w *World) correctPosition(c *Contact) {
	if c.Trigger {
		return
	}
	bodyA, bodyB := c.A.Body(), c.B.Body()
	if bodyA == nil || bodyB == nil {
		return
	}
	invSum := bodyA.invMass + bodyB.invMass
	if invSum == 0 {
		return
	}
	excess := c.Depth - correctionSlop
	if excess <= 0 {
		return
	}

	correction := excess * correctionPercent / invSum
	delta := c.Normal.Scale(correction)
	if bodyA.invMass > 0 {
		bodyA.Translate(delta.Scale(-bodyA.invMass))
	}
	if bodyB.invMass > 0 {
		bodyB.Translate(delta.Scale(bodyB.invMass))
	}
	c.Depth -= excess * correctionPercent
}

// refreshGrid rebuilds the broad phase from the current collider bounds.
func (w *World) refreshGrid() {
	w.grid.Clear()
	for _, id := range w.colliderOrder {
		c := w.colliders[id]
		if c == nil || w.bodies[c.bodyID] == nil {
			continue
		}
		w.grid.Insert(c)
	}
	w.gridDirty = false
}

func (w *World) emit(contacts []*Contact, solid, trigger eventKind) {
	for _, c := range contacts {
		if c.Trigger {
			w.bus.emit(trigger, c)
		} else {
			w.bus.emit(solid, c)
		}
	}
}

// Raycast finds the nearest collider hit along a ray. dir need not be
// normalized.
func (w *World) Raycast(origin, dir Vector2, maxDist float64) (RaycastHit, bool) {
	best := RaycastHit{Distance: math.Inf(1)}
	found := false
	for _, id := range w.colliderOrder {
		c := w.colliders[id]
		if c == nil {
			continue
		}
		hit, ok := c.Raycast(origin, dir, maxDist)
		if ok && hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// QueryAABB returns registered colliders whose bounds overlap the box, in id
// order.
func (w *World) QueryAABB(box AABB) []*Collider {
	if w.gridDirty {
		w.refreshGrid()
	}
	var results []*Collider
	for _, c := range w.grid.QueryAABB(box) {
		if c.Bounds().Overlaps(box) {
			results = append(results, c)
		}
	}
	return results
}
