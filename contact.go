package impulse

import "slices"

// PairKey is the stable identity of an unordered collider pair, canonicalized
// so that A always holds the smaller id.
type PairKey struct {
	A ColliderID
	B ColliderID
}

func makePairKey(a, b ColliderID) PairKey {
	if a < b {
		return PairKey{A: a, B: b}
	}
	return PairKey{A: b, B: a}
}

func comparePairKeys(p, q PairKey) int {
	switch {
	case p.A < q.A:
		return -1
	case p.A > q.A:
		return 1
	case p.B < q.B:
		return -1
	case p.B > q.B:
		return 1
	}
	return 0
}

// Contact is the per-pair, per-step collision record handed to event
// subscribers. The normal points from collider A toward collider B. A fresh
// record is produced every step a pair touches; after the pair separates the
// last record is retained for a short grace window so an exit event can still
// reference it.
type Contact struct {
	A *Collider
	B *Collider

	Point  Vector2
	Normal Vector2
	Depth  float64

	// RelativeVelocity is B's velocity minus A's at detection time.
	RelativeVelocity Vector2
	// Impulse accumulates the normal impulse magnitude applied by the solver
	// during this step. Zero for trigger pairs.
	Impulse float64

	Friction    float64
	Restitution float64

	Trigger bool
	// Time is the simulation timestamp of the step that produced the record.
	Time float64
	// New marks the first step of a touch episode.
	New bool
}

func (c *Contact) key() PairKey {
	return makePairKey(c.A.id, c.B.id)
}

// pairGracePeriod is how long (simulation seconds) a separated pair record
// lingers before being purged.
const pairGracePeriod = 0.25

// collisionPair tracks one pair across steps.
type collisionPair struct {
	touching    bool
	lastContact float64
	contact     *Contact
}

// contactTracker derives enter/stay/exit transitions by diffing each step's
// contact set against the tracked pair states.
type contactTracker struct {
	pairs map[PairKey]*collisionPair
}

func newContactTracker() *contactTracker {
	return &contactTracker{pairs: make(map[PairKey]*collisionPair)}
}

// update ingests the step's contact set and classifies every pair. Exits fire
// exactly once, on the first step a previously touching pair is absent.
// Result slices are sorted by pair key for deterministic emission order.
func (t *contactTracker) update(now float64, contacts map[PairKey]*Contact) (enters, stays, exits []*Contact) {
	for key, c := range contacts {
		p := t.pairs[key]
		if p == nil {
			p = &collisionPair{}
			t.pairs[key] = p
		}
		if p.touching {
			stays = append(stays, c)
		} else {
			c.New = true
			enters = append(enters, c)
		}
		p.touching = true
		p.lastContact = now
		p.contact = c
	}

	for key, p := range t.pairs {
		if _, active := contacts[key]; active {
			continue
		}
		if p.touching {
			p.touching = false
			if p.contact != nil {
				exits = append(exits, p.contact)
			}
			continue
		}
		if now-p.lastContact > pairGracePeriod {
			delete(t.pairs, key)
		}
	}

	byKey := func(a, b *Contact) int { return comparePairKeys(a.key(), b.key()) }
	slices.SortFunc(enters, byKey)
	slices.SortFunc(stays, byKey)
	slices.SortFunc(exits, byKey)
	return enters, stays, exits
}

// touching reports whether the pair is currently in contact.
func (t *contactTracker) touching(key PairKey) bool {
	p := t.pairs[key]
	return p != nil && p.touching
}

// forget drops every pair involving the collider, without emitting events.
// Called when a collider is deregistered mid-episode.
func (t *contactTracker) forget(id ColliderID) {
	for key := range t.pairs {
		if key.A == id || key.B == id {
			delete(t.pairs, key)
		}
	}
}
