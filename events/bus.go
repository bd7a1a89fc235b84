// Package events provides the change-notification bus. Writers publish an
// entity-changed signal after a mutation; screens subscribe and re-run their
// reads instead of polling a version counter.
package events

import "sync"

// Entity identifies which local dataset changed.
type Entity string

const (
	Authors   Entity = "authors"
	Quotes    Entity = "quotes"
	Favorites Entity = "favorites"
	Settings  Entity = "settings"
	Outbox    Entity = "outbox"
)

// Bus fans an entity-changed signal out to subscribers. Callbacks run
// synchronously on the publishing goroutine and must not block.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Entity)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Entity))}
}

// Subscribe registers fn and returns a cancel func that removes it.
func (b *Bus) Subscribe(fn func(Entity)) (cancel func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish notifies every subscriber. A nil Bus is a no-op so writers can
// hold an optional bus without guarding every call site.
func (b *Bus) Publish(e Entity) {
	if b == nil {
		return
	}
	b.mu.RLock()
	fns := make([]func(Entity), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
