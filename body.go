package impulse

// BodyType controls how a body participates in the solver.
//
// Static bodies have infinite mass, never integrate, and never move.
// Dynamic bodies integrate velocity and position and respond to forces,
// impulses and contacts. Kinematic bodies integrate position from their
// velocity but have infinite mass for the solver and ignore forces and
// impulses.
type BodyType uint8

const (
	BodyStatic BodyType = iota
	BodyDynamic
	BodyKinematic
)

func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "static"
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	}
	return "unknown"
}

// BodyID identifies a body inside a World registry.
type BodyID uint64

const minMass = 0.0001

// RigidBody owns the kinematic state of one simulated object. Create with
// NewRigidBody and register through World.AddBody.
type RigidBody struct {
	id        BodyID
	bodyType  BodyType
	transform Transform
	// version increments on every pose mutation so collider bounds caches
	// know when to recompute.
	version uint64

	mass     float64
	invMass  float64
	velocity Vector2
	force    Vector2
}

// NewRigidBody creates an unregistered body. Mass is only meaningful for
// dynamic bodies; static and kinematic bodies get inverse mass zero.
func NewRigidBody(bodyType BodyType, mass float64) *RigidBody {
	b := &RigidBody{
		bodyType:  bodyType,
		transform: IdentityTransform(),
		version:   1,
	}
	b.SetMass(mass)
	return b
}

func (b *RigidBody) ID() BodyID       { return b.id }
func (b *RigidBody) Type() BodyType   { return b.bodyType }
func (b *RigidBody) Mass() float64    { return b.mass }
func (b *RigidBody) InvMass() float64 { return b.invMass }

// SetMass clamps non-positive masses to a small minimum for dynamic bodies.
func (b *RigidBody) SetMass(mass float64) {
	if mass < minMass {
		mass = minMass
	}
	b.mass = mass
	if b.bodyType == BodyDynamic {
		b.invMass = 1.0 / mass
	} else {
		b.invMass = 0
	}
}

func (b *RigidBody) Transform() Transform { return b.transform }

func (b *RigidBody) SetTransform(t Transform) {
	b.transform = t
	b.version++
}

func (b *RigidBody) Position() Vector2 { return b.transform.Position }

func (b *RigidBody) SetPosition(p Vector2) {
	b.transform.Position = p
	b.version++
}

func (b *RigidBody) Translate(d Vector2) {
	b.transform.Position = b.transform.Position.Add(d)
	b.version++
}

func (b *RigidBody) Rotation() float64 { return b.transform.Rotation }

func (b *RigidBody) SetRotation(radians float64) {
	b.transform.Rotation = radians
	b.version++
}

func (b *RigidBody) SetScale(s Vector2) {
	b.transform.Scale = s
	b.version++
}

func (b *RigidBody) Velocity() Vector2 { return b.velocity }

// SetVelocity is honored for dynamic and kinematic bodies; static bodies
// never move.
func (b *RigidBody) SetVelocity(v Vector2) {
	if b.bodyType == BodyStatic {
		return
	}
	b.velocity = v
}

// ApplyForce accumulates a force for the next integration step. Only dynamic
// bodies respond.
func (b *RigidBody) ApplyForce(f Vector2) {
	if b.bodyType != BodyDynamic {
		return
	}
	b.force = b.force.Add(f)
}

// ApplyImpulse changes velocity immediately, scaled by inverse mass. Only
// dynamic bodies respond.
func (b *RigidBody) ApplyImpulse(impulse Vector2) {
	if b.bodyType != BodyDynamic {
		return
	}
	b.velocity = b.velocity.Add(impulse.Scale(b.invMass))
}

func (b *RigidBody) clearForces() {
	b.force = Vector2{}
}
