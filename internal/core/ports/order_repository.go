package ports

import (
	"context"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for the order collection.
//
// The collection is persisted as a whole: every mutation reads the entire
// collection, modifies it in memory, and writes it back through SaveAll so
// independent viewers never observe divergent partial states. Writes are
// last-writer-wins at collection granularity; the revision counter exists
// only to trigger re-reads, not to order or merge concurrent writes.
type OrderRepository interface {
	// GetAll retrieves the full order collection. Malformed persisted
	// records are skipped defensively rather than surfaced as errors;
	// corruption is swallowed at this boundary.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// SaveAll replaces the persisted collection with the given orders and
	// increments the revision counter as a side effect. Callers must pair
	// every SaveAll with a ChangeBus broadcast; the store itself does not
	// broadcast.
	SaveAll(ctx context.Context, orders []*order.Order) error

	// Get retrieves one order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves one order by its human-readable order number.
	// Returns an errs.ObjectNotFoundError for unknown numbers.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// Count reports how many orders are persisted. Used by the seeding
	// flow to detect an empty store.
	Count(ctx context.Context) (int64, error)
}

// StoreMeta provides access to the store's side-channel state: the revision
// counter incremented by every SaveAll and the one-time seed flag that keeps
// a user who deleted all orders from being re-seeded.
type StoreMeta interface {
	// Revision returns the current revision counter, or 0 when nothing has
	// ever been saved.
	Revision(ctx context.Context) (int64, error)

	// Seeded reports whether the demo dataset has ever been written.
	Seeded(ctx context.Context) (bool, error)

	// MarkSeeded sets the one-time seed flag.
	MarkSeeded(ctx context.Context) error
}
