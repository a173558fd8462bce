package services_test

import (
	"testing"
	"time"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/model/tracking"
	"expressia/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, date string, status order.Status) *order.Order {
	t.Helper()

	creationDate, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		"EXP2024001",
		"Guatemala",
		"Costa Rica",
		2.5,
		order.Dimensions{Length: 30, Width: 20, Height: 10},
		order.ModalityStandard,
		"Documentos",
		45.50,
		creationDate,
		status,
		&order.Owner{Name: "María González", Email: "maria@example.com"},
		nil,
		nil,
	)
	require.NoError(t, err)
	return o
}

func TestTimelineBuilder_Build(t *testing.T) {
	builder := services.NewTimelineBuilder()

	t.Run("should build five canonical milestones with offset dates", func(t *testing.T) {
		o := newTestOrder(t, "2025-09-18", order.StatusPending)

		timeline, err := builder.Build(o)

		require.NoError(t, err)
		require.Len(t, timeline, 5)

		assert.Equal(t, tracking.StageConfirmed, timeline[0].Stage)
		assert.Equal(t, tracking.StagePickedUp, timeline[1].Stage)
		assert.Equal(t, tracking.StageInTransit, timeline[2].Stage)
		assert.Equal(t, tracking.StageLocalDelivery, timeline[3].Stage)
		assert.Equal(t, tracking.StageDelivered, timeline[4].Stage)

		assert.Equal(t, "2025-09-18", timeline[0].Date)
		assert.Equal(t, "2025-09-18", timeline[1].Date)
		assert.Equal(t, "2025-09-19", timeline[2].Date)
		assert.Equal(t, "2025-09-20", timeline[3].Date)
		assert.Equal(t, "2025-09-20", timeline[4].Date)

		assert.Equal(t, "09:00", timeline[0].Time)
		assert.Equal(t, "14:15", timeline[1].Time)
		assert.Equal(t, "11:45", timeline[2].Time)
		assert.Equal(t, tracking.TimeEstimated, timeline[3].Time)
		assert.Equal(t, tracking.TimeEstimated, timeline[4].Time)

		assert.Equal(t, "Guatemala", timeline[0].Location)
		assert.Equal(t, "Guatemala", timeline[1].Location)
		assert.Equal(t, "En ruta hacia Costa Rica", timeline[2].Location)
		assert.Equal(t, "Costa Rica", timeline[3].Location)
		assert.Equal(t, "Costa Rica", timeline[4].Location)
	})

	t.Run("should complete only the first milestone for a pending order", func(t *testing.T) {
		o := newTestOrder(t, "2025-09-18", order.StatusPending)

		timeline, err := builder.Build(o)

		require.NoError(t, err)
		assert.True(t, timeline[0].Completed)
		for i := 1; i < 5; i++ {
			assert.False(t, timeline[i].Completed, "milestone %d should be incomplete", i)
		}
	})

	t.Run("should complete the first three milestones for an order in transit", func(t *testing.T) {
		o := newTestOrder(t, "2025-09-18", order.StatusInTransit)

		timeline, err := builder.Build(o)

		require.NoError(t, err)
		assert.True(t, timeline[0].Completed)
		assert.True(t, timeline[1].Completed)
		assert.True(t, timeline[2].Completed)
		assert.False(t, timeline[3].Completed)
		assert.False(t, timeline[4].Completed)
	})

	t.Run("should complete every milestone for a delivered order", func(t *testing.T) {
		o := newTestOrder(t, "2025-09-18", order.StatusDelivered)

		timeline, err := builder.Build(o)

		require.NoError(t, err)
		for i, m := range timeline {
			assert.True(t, m.Completed, "milestone %d should be completed", i)
		}
		assert.Equal(t, "2025-09-20", timeline[3].Date)
		assert.Equal(t, "2025-09-20", timeline[4].Date)
	})

	t.Run("should be deterministic for an unchanged order", func(t *testing.T) {
		o := newTestOrder(t, "2025-09-22", order.StatusInTransit)

		first, err := builder.Build(o)
		require.NoError(t, err)
		second, err := builder.Build(o)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("should return error for an invalid order", func(t *testing.T) {
		var invalid *order.Order

		timeline, err := builder.Build(invalid)

		require.Error(t, err)
		assert.Nil(t, timeline)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
