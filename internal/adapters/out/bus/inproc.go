// Package bus provides Change Notification Bus implementations. The bus
// carries no payload: a broadcast means "the order collection changed,
// re-read it", and receivers coalesce by reloading the full collection.
package bus

import (
	"context"
	"sync"

	"expressia/internal/core/ports"
)

// InProcChangeBus delivers change signals to subscribers in the same process.
// It is the default bus when no message broker is configured.
type InProcChangeBus struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]func()
}

// NewInProcChangeBus creates an in-process change bus with no subscribers.
func NewInProcChangeBus() *InProcChangeBus {
	return &InProcChangeBus{
		subscribers: make(map[int]func()),
	}
}

// Broadcast invokes every subscriber. Delivery is best-effort and
// synchronous; subscribers must not block.
func (b *InProcChangeBus) Broadcast(_ context.Context) error {
	b.Notify()
	return nil
}

// Notify invokes local subscribers. Used by the revision watcher when an
// external storage mutation is detected.
func (b *InProcChangeBus) Notify() {
	b.mu.Lock()
	callbacks := make([]func(), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		callbacks = append(callbacks, fn)
	}
	b.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Subscribe registers a callback invoked on every broadcast. The returned
// handle removes the subscription and is safe to call more than once.
func (b *InProcChangeBus) Subscribe(fn func()) ports.UnsubscribeFunc {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
}
