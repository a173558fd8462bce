package commands

import (
	"context"
	"time"

	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/ports"
	"expressia/internal/pkg/errs"
)

// OverrideStatusCommandHandler applies a direct coarse-status override and
// records it as a status history event. It never touches the timeline.
type OverrideStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        ports.ChangeBus
}

// NewOverrideStatusCommandHandler creates a handler for direct status overrides.
func NewOverrideStatusCommandHandler(uowFactory OrderUoWFactory, bus ports.ChangeBus) OverrideStatusCommandHandler {
	return OverrideStatusCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
	}
}

// Handle processes the override. The whole collection is read, the target
// order mutated, and the collection written back inside one transaction,
// followed by a change broadcast.
func (h *OverrideStatusCommandHandler) Handle(ctx context.Context, cmd OverrideStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	target := findByID(orders, cmd)
	if target == nil {
		return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	if err = target.OverrideStatus(cmd.Status(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.SaveAll(ctx, orders); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.bus.Broadcast(ctx)
}

func findByID(orders []*order.Order, cmd OverrideStatusCommand) *order.Order {
	for _, o := range orders {
		if o.ID().IsEqual(cmd.OrderID()) {
			return o
		}
	}
	return nil
}
