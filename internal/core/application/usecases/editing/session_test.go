package editing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"expressia/internal/core/application/usecases/editing"
	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/model/tracking"
	"expressia/internal/core/domain/services"
	"expressia/internal/core/ports"
	"expressia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}
func (m *MockOrderRepository) SaveAll(ctx context.Context, orders []*order.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetByNumber(_ context.Context, _ string) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) Count(_ context.Context) (int64, error) {
	return 0, errors.New("not implemented in mock")
}

type MockChangeBus struct{ mock.Mock }

func (m *MockChangeBus) Broadcast(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockChangeBus) Subscribe(_ func()) ports.UnsubscribeFunc {
	return func() {}
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() editing.OrderUoW {
	args := m.Called()
	return args.Get(0).(editing.OrderUoW)
}

func restoredOrder(t *testing.T, id kernel.UUID, status order.Status, timeline tracking.Timeline) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		id,
		"EXP2024002",
		"El Salvador",
		"Honduras",
		1.8,
		order.Dimensions{},
		order.ModalityStandard,
		"",
		32.00,
		time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC),
		status,
		&order.Owner{Name: "Carlos Rodríguez", Email: "carlos@example.com"},
		timeline,
		nil,
	)
	require.NoError(t, err)
	return o
}

func builtTimeline(t *testing.T, o *order.Order) tracking.Timeline {
	t.Helper()
	timeline, err := services.NewTimelineBuilder().Build(o)
	require.NoError(t, err)
	return timeline
}

// expectRead wires the transactional read both Open and Commit perform.
func expectRead(uow *MockOrderUoW, repo *MockOrderRepository, ctx context.Context, orders []*order.Order) []*mock.Call {
	return []*mock.Call{
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAll", ctx).Return(orders, nil).Once(),
	}
}

func TestSession_Open(t *testing.T) {
	t.Run("should open a draft without persisting when a timeline exists", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		o := restoredOrder(t, id, order.StatusInTransit, nil)
		require.NoError(t, o.AttachTimeline(builtTimeline(t, o)))

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
		mock.InOrder(calls...)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()
		bus := new(MockChangeBus)

		s := editing.NewSession(factory, bus)
		require.NoError(t, s.Open(ctx, id))

		assert.Equal(t, editing.StateEditing, s.State())
		assert.Len(t, s.Timeline(), 5)
		repo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
		bus.AssertNotCalled(t, "Broadcast", mock.Anything)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should materialize persist and broadcast a missing timeline", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		o := restoredOrder(t, id, order.StatusPending, nil)

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		bus := new(MockChangeBus)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls,
			repo.On("SaveAll", ctx, mock.AnythingOfType("[]*order.Order")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			bus.On("Broadcast", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		mock.InOrder(calls...)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		s := editing.NewSession(factory, bus)
		require.NoError(t, s.Open(ctx, id))

		assert.True(t, o.HasTimeline())
		assert.Empty(t, o.History(), "lazy materialization records no history event")
		assert.Equal(t, editing.StateEditing, s.State())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("should reject a delivered order", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		o := restoredOrder(t, id, order.StatusDelivered, nil)
		require.NoError(t, o.AttachTimeline(builtTimeline(t, o)))

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
		mock.InOrder(calls...)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		s := editing.NewSession(factory, new(MockChangeBus))
		err := s.Open(ctx, id)

		require.ErrorIs(t, err, order.ErrOrderDelivered)
		assert.Equal(t, editing.StateClosed, s.State())
		assert.Nil(t, s.Timeline())
	})

	t.Run("should reject an unknown order", func(t *testing.T) {
		ctx := t.Context()

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, nil)
		calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
		mock.InOrder(calls...)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		s := editing.NewSession(factory, new(MockChangeBus))
		err := s.Open(ctx, kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, editing.StateClosed, s.State())
	})

	t.Run("should reject opening twice", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		o := restoredOrder(t, id, order.StatusPending, nil)
		require.NoError(t, o.AttachTimeline(builtTimeline(t, o)))

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
		mock.InOrder(calls...)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		s := editing.NewSession(factory, new(MockChangeBus))
		require.NoError(t, s.Open(ctx, id))

		require.ErrorIs(t, s.Open(ctx, id), editing.ErrSessionAlreadyOpen)
	})
}

func TestSession_Mutations(t *testing.T) {
	t.Run("should reject mutations on a closed session", func(t *testing.T) {
		s := editing.NewSession(new(MockOrderUoWFactory), new(MockChangeBus))

		require.ErrorIs(t, s.UpdateField(0, tracking.FieldLocation, "Tegucigalpa"), editing.ErrSessionIsNotOpen)
		require.ErrorIs(t, s.ToggleCompleted(2, true), editing.ErrSessionIsNotOpen)
		require.ErrorIs(t, s.Commit(t.Context()), editing.ErrSessionIsNotOpen)
	})

	t.Run("should keep the order untouched until commit", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		o := restoredOrder(t, id, order.StatusInTransit, nil)
		require.NoError(t, o.AttachTimeline(builtTimeline(t, o)))
		before := o.Timeline()

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
		mock.InOrder(calls...)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		s := editing.NewSession(factory, new(MockChangeBus))
		require.NoError(t, s.Open(ctx, id))

		require.NoError(t, s.UpdateField(2, tracking.FieldLocation, "Frontera El Amatillo"))
		require.NoError(t, s.ToggleCompleted(3, true))

		assert.Equal(t, before, o.Timeline())
		assert.Equal(t, "Frontera El Amatillo", s.Timeline()[2].Location)
		assert.True(t, s.Timeline()[3].Completed)
	})

	t.Run("should discard the draft on cancel", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		o := restoredOrder(t, id, order.StatusInTransit, nil)
		require.NoError(t, o.AttachTimeline(builtTimeline(t, o)))

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
		mock.InOrder(calls...)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		s := editing.NewSession(factory, new(MockChangeBus))
		require.NoError(t, s.Open(ctx, id))
		require.NoError(t, s.UpdateField(0, tracking.FieldLocation, "San Miguel"))

		s.Cancel()

		assert.Equal(t, editing.StateClosed, s.State())
		assert.Nil(t, s.Timeline())
		assert.Empty(t, o.History())
		repo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})
}

func TestSession_Commit(t *testing.T) {
	openSession := func(t *testing.T, ctx context.Context, o *order.Order, id kernel.UUID, factory *MockOrderUoWFactory, bus *MockChangeBus) *editing.Session {
		t.Helper()
		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls, uow.On("Rollback", ctx).Return(nil).Once())
		mock.InOrder(calls...)
		factory.On("Create").Return(uow).Once()

		s := editing.NewSession(factory, bus)
		require.NoError(t, s.Open(ctx, id))
		return s
	}

	t.Run("should apply the draft derive the status and broadcast", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		o := restoredOrder(t, id, order.StatusPending, nil)
		require.NoError(t, o.AttachTimeline(builtTimeline(t, o)))

		factory := new(MockOrderUoWFactory)
		bus := new(MockChangeBus)
		s := openSession(t, ctx, o, id, factory, bus)

		require.NoError(t, s.ToggleCompleted(1, true))
		require.NoError(t, s.ToggleCompleted(2, true))
		require.NoError(t, s.UpdateField(2, tracking.FieldDate, "2025-09-23"))
		require.NoError(t, s.UpdateField(2, tracking.FieldTime, "16:30"))

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls,
			repo.On("SaveAll", ctx, mock.AnythingOfType("[]*order.Order")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			bus.On("Broadcast", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		mock.InOrder(calls...)
		factory.On("Create").Return(uow).Once()

		require.NoError(t, s.Commit(ctx))

		assert.Equal(t, editing.StateClosed, s.State())
		assert.Nil(t, s.Timeline())
		assert.Equal(t, order.StatusInTransit, o.Status(), "status is re-derived from milestone completion")
		assert.True(t, o.Timeline()[2].Completed)

		history := o.History()
		require.Len(t, history, 1, "exactly one tracking event per commit")
		assert.Equal(t, order.HistoryEventTracking, history[0].Type)
		assert.Equal(t, order.StatusInTransit, history[0].Value)
		assert.Len(t, history[0].Snapshot, 5)

		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("should reject a chronology violation and keep the draft", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		o := restoredOrder(t, id, order.StatusInTransit, nil)
		require.NoError(t, o.AttachTimeline(builtTimeline(t, o)))

		factory := new(MockOrderUoWFactory)
		bus := new(MockChangeBus)
		s := openSession(t, ctx, o, id, factory, bus)

		// Stage three dated before stage one breaks the chronology.
		require.NoError(t, s.UpdateField(2, tracking.FieldDate, "2020-01-01"))
		require.NoError(t, s.UpdateField(2, tracking.FieldTime, "08:00"))

		err := s.Commit(ctx)

		var violation *editing.ChronologyViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, 3, violation.Index)
		assert.Contains(t, violation.Message, "paso 3")

		assert.Equal(t, editing.StateEditing, s.State(), "rejected commit returns to editing")
		assert.Equal(t, "2020-01-01", s.Timeline()[2].Date, "draft survives the rejection")
		assert.Empty(t, o.History(), "persisted order is untouched")

		// Correcting the violation makes the retried commit succeed.
		require.NoError(t, s.UpdateField(2, tracking.FieldDate, "2025-09-23"))

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls,
			repo.On("SaveAll", ctx, mock.AnythingOfType("[]*order.Order")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			bus.On("Broadcast", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		mock.InOrder(calls...)
		factory.On("Create").Return(uow).Once()

		require.NoError(t, s.Commit(ctx))
		require.Len(t, o.History(), 1)
	})

	t.Run("should return to editing when persistence fails", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		o := restoredOrder(t, id, order.StatusPending, nil)
		require.NoError(t, o.AttachTimeline(builtTimeline(t, o)))

		factory := new(MockOrderUoWFactory)
		bus := new(MockChangeBus)
		s := openSession(t, ctx, o, id, factory, bus)
		require.NoError(t, s.UpdateField(0, tracking.FieldLocation, "Ciudad de Guatemala"))

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		calls := expectRead(uow, repo, ctx, []*order.Order{o})
		calls = append(calls,
			repo.On("SaveAll", ctx, mock.AnythingOfType("[]*order.Order")).Return(errors.New("save error")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		mock.InOrder(calls...)
		factory.On("Create").Return(uow).Once()

		require.Error(t, s.Commit(ctx))
		assert.Equal(t, editing.StateEditing, s.State())
		assert.NotNil(t, s.Timeline())
	})
}
