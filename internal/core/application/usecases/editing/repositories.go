// Package editing holds the order lifecycle controller: a per-order edit
// session that opens a mutable draft of the timeline, applies milestone
// mutations, and commits them atomically through the chronology gate.
package editing

import (
	"context"

	"expressia/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle for edit sessions.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for edit session persistence.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
