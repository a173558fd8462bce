package commands

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/services"
	"expressia/internal/core/ports"
)

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CreateOrderResult reports the outcome of a successful order creation back
// to the intake flow: the assigned order number and the cost estimate.
type CreateOrderResult struct {
	OrderNumber string
	Cost        float64
}

// CreateOrderCommandHandler handles the business logic for order creation.
// Computes the deterministic cost estimate, assigns a unique order number,
// and persists the order pending with no timeline.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        ports.ChangeBus
	calculator services.CostCalculator
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires an OrderUoWFactory for transactional persistence and a ChangeBus
// so other viewers learn about the new order.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, bus ports.ChangeBus) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		calculator: services.NewCostCalculator(),
	}
}

// Handle processes the order creation command. The whole collection is read,
// extended, and written back inside one transaction; on success the change is
// broadcast so every viewer reloads.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	cost := h.calculator.Estimate(cmd.Weight(), cmd.Dimensions(), cmd.Modality(), cmd.Origin(), cmd.Destination())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetAll(ctx)
	if err != nil {
		return CreateOrderResult{}, err
	}

	orderNumber := newOrderNumber()
	for hasOrderNumber(orders, orderNumber) {
		orderNumber = newOrderNumber()
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		orderNumber,
		cmd.Origin(),
		cmd.Destination(),
		cmd.Weight(),
		cmd.Dimensions(),
		cmd.Modality(),
		cmd.Description(),
		cost,
		time.Now(),
		cmd.Owner(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = orderRepo.SaveAll(ctx, append(orders, newOrder)); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	if err = h.bus.Broadcast(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{OrderNumber: orderNumber, Cost: cost}, nil
}

// newOrderNumber produces a human-readable code like EXPK7M2Q9X4T.
func newOrderNumber() string {
	var sb strings.Builder
	sb.WriteString("EXP")
	for range 9 {
		sb.WriteByte(orderNumberAlphabet[rand.IntN(len(orderNumberAlphabet))])
	}
	return sb.String()
}

func hasOrderNumber(orders []*order.Order, orderNumber string) bool {
	for _, o := range orders {
		if o.OrderNumber() == orderNumber {
			return true
		}
	}
	return false
}
