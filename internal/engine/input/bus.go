package input

import "sync"

// Handler receives events of the type it subscribed to. Returning true
// consumes the event so later subscribers do not see it.
type Handler func(e Event) bool

type subscription struct {
	id      uint64
	kind    EventType
	handler Handler
}

// Bus dispatches events to subscribers in subscription order.
//
// Subscribe and the returned unsubscribe func may be called from any
// goroutine; Dispatch runs handlers on the caller's goroutine.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for events of kind. The returned func removes the
// subscription; calling it more than once is harmless.
func (b *Bus) Subscribe(kind EventType, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kind: kind, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Dispatch delivers e to matching subscribers until one consumes it.
// Reports whether the event was consumed.
func (b *Bus) Dispatch(e Event) bool {
	b.mu.Lock()
	subs := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.kind == e.Type {
			subs = append(subs, s.handler)
		}
	}
	b.mu.Unlock()

	for _, h := range subs {
		if h(e) {
			return true
		}
	}
	return false
}

// DispatchAll delivers every event in events.
func (b *Bus) DispatchAll(events []Event) {
	for _, e := range events {
		b.Dispatch(e)
	}
}

// Listeners returns the number of live subscriptions.
func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
