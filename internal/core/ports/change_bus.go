package ports

import "context"

// UnsubscribeFunc removes a previously registered subscription. Calling it
// more than once is safe.
type UnsubscribeFunc func()

// ChangeBus signals "the order collection changed" to independent viewers
// sharing one persisted store. The signal carries no payload: delivery is
// best-effort and at-least-once, and receivers coalesce by reloading the full
// collection from the store rather than applying deltas.
type ChangeBus interface {
	// Broadcast signals that the order collection changed. Every SaveAll
	// must be paired with a Broadcast by the caller.
	Broadcast(ctx context.Context) error

	// Subscribe registers a callback invoked on broadcast or when an
	// external storage mutation is detected. The returned handle removes
	// the subscription.
	Subscribe(fn func()) UnsubscribeFunc
}
