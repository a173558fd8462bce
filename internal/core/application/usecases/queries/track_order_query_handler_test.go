package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"expressia/internal/core/application/usecases/queries"
	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/services"
	"expressia/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) SaveAll(_ context.Context, _ []*order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) Count(_ context.Context) (int64, error) {
	return 0, errors.New("not implemented in mock")
}

func newTrackedOrder(t *testing.T, status order.Status, withTimeline bool) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
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
		nil,
		nil,
	)
	require.NoError(t, err)

	if withTimeline {
		timeline, buildErr := services.NewTimelineBuilder().Build(o)
		require.NoError(t, buildErr)
		require.NoError(t, o.AttachTimeline(timeline))
	}
	return o
}

func newTrackOrderHandler(repo *MockOrderRepository) queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(
		repo,
		services.NewTimelineBuilder(),
		services.NewStatusDeriver(),
	)
}

func TestTrackOrderQueryHandler_Handle(t *testing.T) {
	t.Run("should project an in transit order", func(t *testing.T) {
		ctx := t.Context()
		o := newTrackedOrder(t, order.StatusInTransit, true)

		repo := new(MockOrderRepository)
		repo.On("GetByNumber", ctx, "EXP2024002").Return(o, nil).Once()

		query, err := queries.NewTrackOrderQuery("EXP2024002")
		require.NoError(t, err)

		result, err := newTrackOrderHandler(repo).Handle(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, "EXP2024002", result.OrderNumber)
		assert.Equal(t, "en-transito", result.Status)
		assert.Equal(t, "En Tránsito", result.StatusLabel)
		assert.Equal(t, "El Salvador", result.Origin)
		assert.Equal(t, "Honduras", result.Destination)
		assert.Equal(t, 60, result.Progress)

		require.Len(t, result.Timeline, 5)
		assert.Equal(t, "Pedido Confirmado", result.Timeline[0].Stage)
		assert.True(t, result.Timeline[2].Completed)
		assert.False(t, result.Timeline[3].Completed)

		// The first incomplete milestone names the current location.
		assert.Equal(t, result.Timeline[3].Location, result.CurrentLocation)
		assert.Equal(t, result.Timeline[4].Date, result.EstimatedDelivery)

		repo.AssertExpectations(t)
	})

	t.Run("should report the destination as location when everything is complete", func(t *testing.T) {
		ctx := t.Context()
		o := newTrackedOrder(t, order.StatusDelivered, true)

		repo := new(MockOrderRepository)
		repo.On("GetByNumber", ctx, "EXP2024002").Return(o, nil).Once()

		query, err := queries.NewTrackOrderQuery("EXP2024002")
		require.NoError(t, err)

		result, err := newTrackOrderHandler(repo).Handle(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, "Honduras", result.CurrentLocation)
		assert.Equal(t, 100, result.Progress)
		assert.Equal(t, "Entregado", result.StatusLabel)
	})

	t.Run("should synthesize a timeline for orders persisted without one", func(t *testing.T) {
		ctx := t.Context()
		o := newTrackedOrder(t, order.StatusPending, false)

		repo := new(MockOrderRepository)
		repo.On("GetByNumber", ctx, "EXP2024002").Return(o, nil).Once()

		query, err := queries.NewTrackOrderQuery("EXP2024002")
		require.NoError(t, err)

		result, err := newTrackOrderHandler(repo).Handle(ctx, query)
		require.NoError(t, err)

		require.Len(t, result.Timeline, 5)
		assert.Equal(t, 25, result.Progress)
		assert.False(t, o.HasTimeline(), "the synthesized timeline is not written back")
	})

	t.Run("should normalize the number before the lookup", func(t *testing.T) {
		ctx := t.Context()
		o := newTrackedOrder(t, order.StatusInTransit, true)

		repo := new(MockOrderRepository)
		repo.On("GetByNumber", ctx, "EXP2024002").Return(o, nil).Once()

		query, err := queries.NewTrackOrderQuery("  exp2024002  ")
		require.NoError(t, err)

		_, err = newTrackOrderHandler(repo).Handle(ctx, query)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("should keep a canceled status sticky in the projection", func(t *testing.T) {
		ctx := t.Context()
		o := newTrackedOrder(t, order.StatusCanceled, true)

		repo := new(MockOrderRepository)
		repo.On("GetByNumber", ctx, "EXP2024002").Return(o, nil).Once()

		query, err := queries.NewTrackOrderQuery("EXP2024002")
		require.NoError(t, err)

		result, err := newTrackOrderHandler(repo).Handle(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, "cancelado", result.Status)
		assert.Equal(t, 15, result.Progress)
	})

	t.Run("should propagate an unknown number", func(t *testing.T) {
		ctx := t.Context()

		repo := new(MockOrderRepository)
		repo.On("GetByNumber", ctx, "EXP0000000").
			Return(nil, errs.NewObjectNotFoundError("orderNumber", "EXP0000000")).Once()

		query, err := queries.NewTrackOrderQuery("EXP0000000")
		require.NoError(t, err)

		_, err = newTrackOrderHandler(repo).Handle(ctx, query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject an empty number at construction", func(t *testing.T) {
		_, err := queries.NewTrackOrderQuery("")
		require.Error(t, err)
	})

	t.Run("should reject a zero value query", func(t *testing.T) {
		var query queries.TrackOrderQuery
		_, err := newTrackOrderHandler(new(MockOrderRepository)).Handle(t.Context(), query)
		require.ErrorIs(t, err, queries.ErrTrackOrderQueryIsNotConstructed)
	})
}
