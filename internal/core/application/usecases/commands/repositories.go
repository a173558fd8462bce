// Package commands contains business operations that modify the order
// collection. Implements the Command pattern for write operations in the
// CQRS architecture. All commands follow a consistent pattern: validation,
// transaction management, whole-collection persistence, and change broadcast.
package commands

import (
	"context"

	"expressia/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure the order collection is always mutated as a whole
// inside one transaction.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic read-modify-write of the order collection.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StoreMetaFactory provides access to the store's side-channel state
	// within a transaction.
	StoreMetaFactory interface {
		StoreMeta() ports.StoreMeta
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions that touch both the order collection and the
	// store's side-channel state (seeding).
	UoW interface {
		TxManager
		OrderRepoFactory
		StoreMetaFactory
	}

	// UoWFactory creates new unit of work instances for operations spanning
	// orders and store meta state.
	UoWFactory interface {
		Create() UoW
	}
)
