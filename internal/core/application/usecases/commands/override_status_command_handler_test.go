package commands_test

import (
	"testing"
	"time"

	"expressia/internal/core/application/usecases/commands"
	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoredOrder(t *testing.T, id kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		id,
		"EXP2024001",
		"Guatemala",
		"Costa Rica",
		2.5,
		order.Dimensions{Length: 30, Width: 20, Height: 10},
		order.ModalityStandard,
		"Documentos",
		45.50,
		time.Date(2025, 9, 18, 0, 0, 0, 0, time.UTC),
		status,
		&order.Owner{Name: "María González", Email: "maria@example.com"},
		nil,
		nil,
	)
	require.NoError(t, err)
	return o
}

func TestOverrideStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewOverrideStatusCommand(id, order.StatusCanceled)
	require.NoError(t, err)

	target := newStoredOrder(t, id, order.StatusPending)
	other := newStoredOrder(t, kernel.NewUUID(), order.StatusInTransit)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	bus := new(MockChangeBus)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAll", ctx).Return([]*order.Order{other, target}, nil).Once(),
		repo.On("SaveAll", ctx, mock.AnythingOfType("[]*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		bus.On("Broadcast", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOverrideStatusCommandHandler(factory, bus)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusCanceled, target.Status())
	require.Len(t, target.History(), 1)
	assert.Equal(t, order.HistoryEventStatus, target.History()[0].Type)
	assert.Equal(t, order.StatusInTransit, other.Status(), "untargeted orders stay untouched")
	assert.Empty(t, other.History())

	saved := repo.Calls[1].Arguments.Get(1).([]*order.Order)
	assert.Len(t, saved, 2, "the whole collection is written back")

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	bus.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestOverrideStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewOverrideStatusCommand(kernel.NewUUID(), order.StatusDelivered)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAll", ctx).Return([]*order.Order(nil), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOverrideStatusCommandHandler(factory, new(MockChangeBus))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestOverrideStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.OverrideStatusCommand{} // not constructed properly
	h := commands.NewOverrideStatusCommandHandler(new(MockOrderUoWFactory), new(MockChangeBus))
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOverrideStatusCommandIsNotConstructed)
}
