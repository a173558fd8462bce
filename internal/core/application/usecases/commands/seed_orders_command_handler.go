package commands

import (
	"context"
	"time"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/services"
)

type seedRow struct {
	orderNumber string
	ownerName   string
	ownerEmail  string
	origin      string
	destination string
	status      order.Status
	date        string
	cost        float64
	weight      float64
}

// Demo dataset planted into an empty store on first start.
var seedRows = []seedRow{
	{"EXP2024001", "María González", "maria@example.com", "Guatemala", "Costa Rica", order.StatusDelivered, "2025-09-18", 45.50, 2.5},
	{"EXP2024002", "Carlos Rodríguez", "carlos@example.com", "El Salvador", "Honduras", order.StatusInTransit, "2025-09-22", 32.00, 1.8},
	{"EXP2024003", "Ana Martínez", "ana@example.com", "Nicaragua", "Panamá", order.StatusPending, "2025-09-23", 67.25, 4.2},
}

// SeedOrdersCommandHandler plants a small demo dataset when the store is
// empty. Seeding happens at most once per store: once the seeded flag is set,
// an emptied store stays empty.
type SeedOrdersCommandHandler struct {
	uowFactory UoWFactory
	builder    services.TimelineBuilder
}

// NewSeedOrdersCommandHandler creates a handler that seeds the demo dataset.
func NewSeedOrdersCommandHandler(uowFactory UoWFactory, builder services.TimelineBuilder) SeedOrdersCommandHandler {
	return SeedOrdersCommandHandler{
		uowFactory: uowFactory,
		builder:    builder,
	}
}

// Handle seeds the store. It is a no-op when the store already contains
// orders or when a previous seeding was recorded in the store metadata.
func (h *SeedOrdersCommandHandler) Handle(ctx context.Context) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	count, err := orderRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	meta := uow.StoreMeta()
	seeded, err := meta.Seeded(ctx)
	if err != nil {
		return err
	}
	if seeded {
		return nil
	}

	orders := make([]*order.Order, 0, len(seedRows))
	for _, row := range seedRows {
		o, err := h.buildSeedOrder(row)
		if err != nil {
			return err
		}
		orders = append(orders, o)
	}

	if err = orderRepo.SaveAll(ctx, orders); err != nil {
		return err
	}

	if err = meta.MarkSeeded(ctx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *SeedOrdersCommandHandler) buildSeedOrder(row seedRow) (*order.Order, error) {
	date, err := time.Parse("2006-01-02", row.date)
	if err != nil {
		return nil, err
	}

	owner := &order.Owner{Name: row.ownerName, Email: row.ownerEmail}
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		row.orderNumber,
		row.origin,
		row.destination,
		row.weight,
		order.Dimensions{},
		order.ModalityStandard,
		"",
		row.cost,
		date,
		row.status,
		owner,
		nil,
		nil,
	)
	if err != nil {
		return nil, err
	}

	timeline, err := h.builder.Build(o)
	if err != nil {
		return nil, err
	}
	if err = o.AttachTimeline(timeline); err != nil {
		return nil, err
	}

	return o, nil
}
