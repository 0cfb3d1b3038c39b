package impulse

import (
	"math"
	"testing"
)

func newTestWorld() *World {
	cfg := DefaultConfig()
	cfg.Gravity = Vector2{}
	return NewWorld(cfg)
}

func addCircleBody(w *World, bodyType BodyType, pos Vector2, radius float64) (*RigidBody, *Collider) {
	b := NewRigidBody(bodyType, 1)
	b.SetPosition(pos)
	w.AddBody(b)
	c := w.AddCollider(b, NewCollider(NewCircle(radius)))
	return b, c
}

func addBoxBody(w *World, bodyType BodyType, pos Vector2, width, height float64) (*RigidBody, *Collider) {
	b := NewRigidBody(bodyType, 1)
	b.SetPosition(pos)
	w.AddBody(b)
	c := w.AddCollider(b, NewCollider(NewBox(width, height)))
	return b, c
}

func stepWorld(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Update(w.TimeStep())
	}
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGravityFall(t *testing.T) {
	w := NewWorld(DefaultConfig())
	body, _ := addCircleBody(w, BodyDynamic, Vec2(0, 0), 0.5)

	stepWorld(w, 60) // one simulated second

	v := body.Velocity()
	if !approx(v.Y, -9.81, 1e-9) {
		t.Errorf("velocity after 1s = %v, want y near -9.81", v)
	}
	if body.Position().Y > -4 {
		t.Errorf("body barely fell: y = %v", body.Position().Y)
	}
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := NewWorld(DefaultConfig())
	body, _ := addBoxBody(w, BodyStatic, Vec2(0, 0), 10, 1)
	body.SetVelocity(Vec2(5, 5))
	body.ApplyForce(Vec2(100, 100))
	body.ApplyImpulse(Vec2(100, 100))

	stepWorld(w, 30)

	if body.Position() != (Vec2(0, 0)) {
		t.Errorf("static body moved to %v", body.Position())
	}
	if body.Velocity() != (Vector2{}) {
		t.Errorf("static body gained velocity %v", body.Velocity())
	}
}

func TestElasticHeadOnCollision(t *testing.T) {
	// Equal masses, restitution 1: the moving circle stops and the resting
	// circle takes over its velocity.
	w := newTestWorld()
	a, colA := addCircleBody(w, BodyDynamic, Vec2(0, 0), 0.5)
	b, colB := addCircleBody(w, BodyDynamic, Vec2(1.05, 0), 0.5)
	a.SetVelocity(Vec2(10, 0))
	colA.Material = Material{Friction: 0, Restitution: 1}
	colB.Material = Material{Friction: 0, Restitution: 1}

	stepWorld(w, 3)

	if !approx(a.Velocity().X, 0, 1e-9) || !approx(a.Velocity().Y, 0, 1e-9) {
		t.Errorf("velocity of a = %v, want (0, 0)", a.Velocity())
	}
	if !approx(b.Velocity().X, 10, 1e-9) || !approx(b.Velocity().Y, 0, 1e-9) {
		t.Errorf("velocity of b = %v, want (10, 0)", b.Velocity())
	}
}

func TestInelasticHeadOnCollision(t *testing.T) {
	// Restitution 0: the pair ends up sharing the momentum equally.
	w := newTestWorld()
	a, colA := addCircleBody(w, BodyDynamic, Vec2(0, 0), 0.5)
	b, colB := addCircleBody(w, BodyDynamic, Vec2(1.05, 0), 0.5)
	a.SetVelocity(Vec2(10, 0))
	colA.Material = Material{Friction: 0, Restitution: 0}
	colB.Material = Material{Friction: 0, Restitution: 0}

	var impulse float64
	var normal Vector2
	w.OnCollisionEnter(func(c *Contact) {
		impulse = c.Impulse
		normal = c.Normal
		if !c.New {
			t.Error("enter contact not marked new")
		}
	})

	stepWorld(w, 3)

	if !approx(a.Velocity().X, 5, 1e-9) {
		t.Errorf("velocity of a = %v, want (5, 0)", a.Velocity())
	}
	if !approx(b.Velocity().X, 5, 1e-9) {
		t.Errorf("velocity of b = %v, want (5, 0)", b.Velocity())
	}
	if !approx(impulse, 5, 1e-9) {
		t.Errorf("accumulated normal impulse = %v, want 5", impulse)
	}
	if normal != (Vec2(1, 0)) {
		t.Errorf("contact normal = %v, want (1, 0)", normal)
	}
}

func TestPenetrationResolution(t *testing.T) {
	// Two deeply overlapping resting circles get pushed apart over a few
	// steps until the residual overlap is within the slop, without inventing
	// any velocity.
	w := newTestWorld()
	a, colA := addCircleBody(w, BodyDynamic, Vec2(0, 0), 1)
	b, colB := addCircleBody(w, BodyDynamic, Vec2(1.5, 0), 1)
	colA.Material = Material{Friction: 0, Restitution: 0}
	colB.Material = Material{Friction: 0, Restitution: 0}

	stepWorld(w, 10)

	dist := a.Position().Distance(b.Position())
	if dist < 2-0.02 {
		t.Errorf("residual overlap %v exceeds slop", 2-dist)
	}
	if a.Velocity() != (Vector2{}) || b.Velocity() != (Vector2{}) {
		t.Errorf("positional correction leaked into velocities: %v %v",
			a.Velocity(), b.Velocity())
	}
	// The correction is symmetric for equal masses.
	mid := a.Position().X + b.Position().X
	if !approx(mid, 1.5, 1e-9) {
		t.Errorf("pair center drifted: %v", mid)
	}
}

func TestCollisionEventSequence(t *testing.T) {
	// A kinematic circle sweeping across a static one produces exactly one
	// enter, a run of stays, and exactly one exit.
	cfg := DefaultConfig()
	cfg.Gravity = Vector2{}
	cfg.TimeStep = 0.25
	w := NewWorld(cfg)

	mover, _ := addCircleBody(w, BodyKinematic, Vec2(-1.3, 0), 0.5)
	mover.SetVelocity(Vec2(1, 0))
	addCircleBody(w, BodyStatic, Vec2(0, 0), 0.5)

	var events []string
	w.OnCollisionEnter(func(c *Contact) { events = append(events, "enter") })
	w.OnCollisionStay(func(c *Contact) { events = append(events, "stay") })
	w.OnCollisionExit(func(c *Contact) { events = append(events, "exit") })

	stepWorld(w, 12)

	if len(events) != 9 {
		t.Fatalf("got %d events %v, want 9", len(events), events)
	}
	if events[0] != "enter" {
		t.Errorf("first event = %q, want enter", events[0])
	}
	if events[len(events)-1] != "exit" {
		t.Errorf("last event = %q, want exit", events[len(events)-1])
	}
	for _, ev := range events[1 : len(events)-1] {
		if ev != "stay" {
			t.Errorf("middle event = %q, want stay", ev)
		}
	}
	// The solver never touches an infinite-mass pair.
	if mover.Velocity() != (Vec2(1, 0)) {
		t.Errorf("kinematic velocity changed: %v", mover.Velocity())
	}
}

func TestTriggerIsolation(t *testing.T) {
	// A trigger reports overlap but exerts no forces: the body passes through
	// at constant velocity.
	cfg := DefaultConfig()
	cfg.Gravity = Vector2{}
	cfg.TimeStep = 0.25
	w := NewWorld(cfg)

	mover, _ := addCircleBody(w, BodyDynamic, Vec2(-1.3, 0), 0.5)
	mover.SetVelocity(Vec2(1, 0))
	_, zone := addBoxBody(w, BodyStatic, Vec2(0, 0), 1, 1)
	zone.IsTrigger = true

	enters, exits, solid := 0, 0, 0
	w.OnTriggerEnter(func(c *Contact) {
		enters++
		if !c.Trigger {
			t.Error("trigger contact not flagged")
		}
		if c.Impulse != 0 {
			t.Errorf("trigger contact carries impulse %v", c.Impulse)
		}
	})
	w.OnTriggerExit(func(c *Contact) { exits++ })
	w.OnCollisionEnter(func(c *Contact) { solid++ })

	stepWorld(w, 12)

	if enters != 1 || exits != 1 {
		t.Errorf("trigger enters = %d, exits = %d, want 1 and 1", enters, exits)
	}
	if solid != 0 {
		t.Errorf("trigger pair leaked %d solid events", solid)
	}
	if mover.Velocity() != (Vec2(1, 0)) {
		t.Errorf("trigger altered velocity: %v", mover.Velocity())
	}
}

func TestLayerFiltering(t *testing.T) {
	w := newTestWorld()
	a, colA := addCircleBody(w, BodyDynamic, Vec2(0, 0), 0.5)
	b, colB := addCircleBody(w, BodyDynamic, Vec2(0.5, 0), 0.5)
	colA.SetLayer(1)
	colB.SetLayer(2)
	colA.SetLayerMask(^uint32(1 << 2)) // a refuses layer 2

	hits := 0
	w.OnCollisionEnter(func(c *Contact) { hits++ })

	stepWorld(w, 3)

	if hits != 0 {
		t.Errorf("masked pair produced %d events", hits)
	}
	if w.Stats().Contacts != 0 {
		t.Errorf("masked pair produced %d contacts", w.Stats().Contacts)
	}
	if a.Position() != (Vec2(0, 0)) || b.Position() != (Vec2(0.5, 0)) {
		t.Error("masked pair was resolved anyway")
	}
}

func TestStaticStaticSkipped(t *testing.T) {
	w := newTestWorld()
	addBoxBody(w, BodyStatic, Vec2(0, 0), 2, 2)
	_, colB := addBoxBody(w, BodyStatic, Vec2(1, 0), 2, 2)

	solid, trigger := 0, 0
	w.OnCollisionEnter(func(c *Contact) { solid++ })
	w.OnTriggerEnter(func(c *Contact) { trigger++ })

	stepWorld(w, 2)
	if solid != 0 || w.Stats().Contacts != 0 {
		t.Errorf("static pair produced contacts: events=%d contacts=%d", solid, w.Stats().Contacts)
	}

	// Flagging one side as a trigger re-admits the pair on the trigger stream.
	colB.IsTrigger = true
	stepWorld(w, 1)
	if trigger != 1 {
		t.Errorf("static trigger pair events = %d, want 1", trigger)
	}
	if solid != 0 {
		t.Errorf("static trigger pair leaked %d solid events", solid)
	}
}

func TestRotatedBoxPairIgnored(t *testing.T) {
	// Box pairs with rotation are outside the narrow phase; the step must run
	// clean and simply report nothing.
	w := newTestWorld()
	tilted, _ := addBoxBody(w, BodyDynamic, Vec2(0, 0), 2, 2)
	tilted.SetRotation(0.3)
	addBoxBody(w, BodyDynamic, Vec2(0.5, 0), 2, 2)

	hits := 0
	w.OnCollisionEnter(func(c *Contact) { hits++ })

	stepWorld(w, 3)

	if hits != 0 || w.Stats().Contacts != 0 {
		t.Errorf("rotated box pair reported contact: events=%d contacts=%d", hits, w.Stats().Contacts)
	}
}

func TestFixedStepAccumulator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = Vector2{}
	cfg.TimeStep = 0.25
	cfg.MaxFrameDelta = 0.5
	w := NewWorld(cfg)

	alpha := w.Update(0.625)
	if w.Stats().Steps != 2 {
		t.Errorf("steps after 2.5 dt = %d, want 2", w.Stats().Steps)
	}
	if alpha != 0.5 {
		t.Errorf("alpha = %v, want 0.5", alpha)
	}
	if w.Alpha() != alpha {
		t.Errorf("Alpha() = %v, want %v", w.Alpha(), alpha)
	}

	// The leftover half step plus another half step completes one step.
	alpha = w.Update(0.125)
	if w.Stats().Steps != 3 || alpha != 0 {
		t.Errorf("steps = %d, alpha = %v, want 3 and 0", w.Stats().Steps, alpha)
	}

	// A stalled frame is clamped to MaxFrameDelta instead of spiralling.
	w.Update(100)
	if w.Stats().Steps != 5 {
		t.Errorf("steps after clamped frame = %d, want 5", w.Stats().Steps)
	}

	// Negative deltas are treated as zero.
	w.Update(-5)
	if w.Stats().Steps != 5 {
		t.Errorf("negative delta advanced the simulation")
	}
}

func TestWorldRaycast(t *testing.T) {
	w := newTestWorld()
	_, near := addCircleBody(w, BodyStatic, Vec2(5, 0), 1)
	addBoxBody(w, BodyStatic, Vec2(10, 0), 2, 2)

	hit, ok := w.Raycast(Vec2(0, 0), Vec2(1, 0), 100)
	if !ok {
		t.Fatal("ray missed everything")
	}
	if hit.Collider != near {
		t.Errorf("ray hit collider %d, want the nearer one", hit.Collider.ID())
	}
	if !approx(hit.Distance, 4, 1e-9) {
		t.Errorf("hit distance = %v, want 4", hit.Distance)
	}

	if _, ok := w.Raycast(Vec2(0, 0), Vec2(-1, 0), 100); ok {
		t.Error("ray pointing away reported a hit")
	}
}

func TestWorldQueryAABB(t *testing.T) {
	w := newTestWorld()
	_, c1 := addCircleBody(w, BodyStatic, Vec2(0, 0), 1)
	_, c2 := addCircleBody(w, BodyStatic, Vec2(5, 0), 1)
	addCircleBody(w, BodyStatic, Vec2(50, 50), 1)

	got := w.QueryAABB(NewAABB(Vec2(-2, -2), Vec2(6, 2)))
	if len(got) != 2 {
		t.Fatalf("query returned %d colliders, want 2", len(got))
	}
	if got[0] != c1 || got[1] != c2 {
		t.Errorf("query order = [%d %d], want id order", got[0].ID(), got[1].ID())
	}
}

func TestRemoveBodyDetachesColliders(t *testing.T) {
	w := newTestWorld()
	body, col := addCircleBody(w, BodyDynamic, Vec2(0, 0), 1)
	w.AddCollider(body, NewCollider(NewBox(1, 1)))

	w.RemoveBody(body)

	stats := w.Stats()
	if stats.Bodies != 0 || stats.Colliders != 0 {
		t.Errorf("stats after removal = %+v", stats)
	}
	if col.Body() != nil {
		t.Error("collider still resolves its removed owner")
	}
	if body.ID() != 0 {
		t.Errorf("removed body kept id %d", body.ID())
	}
}

func TestRemoveColliderMidEpisodeSkipsExit(t *testing.T) {
	// Deregistering a collider drops its tracked pairs silently; no exit
	// event fires on the next step.
	w := newTestWorld()
	addCircleBody(w, BodyDynamic, Vec2(0, 0), 0.5)
	_, zone := addBoxBody(w, BodyStatic, Vec2(0.3, 0), 1, 1)
	zone.IsTrigger = true

	enters, exits := 0, 0
	w.OnTriggerEnter(func(c *Contact) { enters++ })
	w.OnTriggerExit(func(c *Contact) { exits++ })

	stepWorld(w, 1)
	if enters != 1 {
		t.Fatalf("trigger enters = %d, want 1", enters)
	}

	w.RemoveCollider(zone)
	stepWorld(w, 2)

	if exits != 0 {
		t.Errorf("removal emitted %d exit events", exits)
	}
	if w.Stats().Colliders != 1 {
		t.Errorf("colliders after removal = %d, want 1", w.Stats().Colliders)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	w := newTestWorld()
	addCircleBody(w, BodyDynamic, Vec2(0, 0), 0.5)
	addCircleBody(w, BodyStatic, Vec2(0.3, 0), 0.5)

	hits := 0
	sub := w.OnCollisionEnter(func(c *Contact) { hits++ })

	stepWorld(w, 1)
	if hits != 1 {
		t.Fatalf("enter events = %d, want 1", hits)
	}

	if !w.Unsubscribe(sub) {
		t.Error("Unsubscribe reported unknown subscription")
	}
	if w.Unsubscribe(sub) {
		t.Error("double Unsubscribe reported success")
	}

	stepWorld(w, 30)
	if hits != 1 {
		t.Errorf("handler still delivered after unsubscribe: %d", hits)
	}
}
