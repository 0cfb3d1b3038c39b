package impulse

import "github.com/google/uuid"

// CollisionHandler receives contact records from the event streams.
type CollisionHandler func(*Contact)

// SubscriptionID identifies one subscription for later removal.
type SubscriptionID = uuid.UUID

type eventKind uint8

const (
	evCollisionEnter eventKind = iota
	evCollisionStay
	evCollisionExit
	evTriggerEnter
	evTriggerStay
	evTriggerExit
	eventKindCount
)

// eventBus fans contact records out to subscribers. Solid and trigger pairs
// feed separate streams.
type eventBus struct {
	handlers [eventKindCount]map[SubscriptionID]CollisionHandler
}

func newEventBus() *eventBus {
	b := &eventBus{}
	for i := range b.handlers {
		b.handlers[i] = make(map[SubscriptionID]CollisionHandler)
	}
	return b
}

func (b *eventBus) subscribe(kind eventKind, h CollisionHandler) SubscriptionID {
	id := uuid.New()
	b.handlers[kind][id] = h
	return id
}

func (b *eventBus) unsubscribe(id SubscriptionID) bool {
	for i := range b.handlers {
		if _, ok := b.handlers[i][id]; ok {
			delete(b.handlers[i], id)
			return true
		}
	}
	return false
}

func (b *eventBus) emit(kind eventKind, c *Contact) {
	for _, h := range b.handlers[kind] {
		h(c)
	}
}

// Subscription surface on the World.

func (w *World) OnCollisionEnter(h CollisionHandler) SubscriptionID {
	return w.bus.subscribe(evCollisionEnter, h)
}

func (w *World) OnCollisionStay(h CollisionHandler) SubscriptionID {
	return w.bus.subscribe(evCollisionStay, h)
}

func (w *World) OnCollisionExit(h CollisionHandler) SubscriptionID {
	return w.bus.subscribe(evCollisionExit, h)
}

func (w *World) OnTriggerEnter(h CollisionHandler) SubscriptionID {
	return w.bus.subscribe(evTriggerEnter, h)
}

func (w *World) OnTriggerStay(h CollisionHandler) SubscriptionID {
	return w.bus.subscribe(evTriggerStay, h)
}

func (w *World) OnTriggerExit(h CollisionHandler) SubscriptionID {
	return w.bus.subscribe(evTriggerExit, h)
}

// Unsubscribe removes a previously registered handler; reports whether the
// subscription existed.
func (w *World) Unsubscribe(id SubscriptionID) bool {
	return w.bus.unsubscribe(id)
}
