package services

import (
	"fmt"

	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/model/tracking"
)

// Times assigned to the default milestones. The last two stages have no known
// clock time until they happen, so they carry the "Estimado" sentinel.
var defaultStageTimes = [...]string{"09:00", "14:15", "11:45", tracking.TimeEstimated, tracking.TimeEstimated}

// Day offsets of the default milestones relative to the order's creation date.
var defaultStageOffsets = [...]int{0, 0, 1, 2, 2}

// TimelineBuilder synthesizes the default milestone sequence for an order that
// has no materialized timeline yet. It is the fallback used the first time an
// order's tracking is viewed or edited.
//
// Build is a pure function of the order's creation date, route, and current
// coarse status: calling it twice on an unchanged order yields identical
// output.
type TimelineBuilder struct{}

// NewTimelineBuilder creates a new TimelineBuilder instance.
func NewTimelineBuilder() TimelineBuilder {
	return TimelineBuilder{}
}

// Build produces the five canonical milestones for the order. Dates are offset
// from the order date by fixed day deltas (0, 0, +1, +2, +2); completion flags
// are back-filled so they are consistent with the order's current coarse
// status (the first stage is always completed, pick-up once the order left
// pending, transit once in transit, delivery stages only when delivered).
func (b TimelineBuilder) Build(o *order.Order) (tracking.Timeline, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	status := o.Status()
	inTransit := status == order.StatusInTransit || status == order.StatusDelivered
	delivered := status == order.StatusDelivered

	locations := [...]string{
		o.Origin(),
		o.Origin(),
		fmt.Sprintf("En ruta hacia %s", o.Destination()),
		o.Destination(),
		o.Destination(),
	}
	completed := [...]bool{
		true,
		status != order.StatusPending,
		inTransit,
		delivered,
		delivered,
	}

	timeline := make(tracking.Timeline, 0, len(locations))
	for i, stage := range tracking.CanonicalStages() {
		timeline = append(timeline, tracking.Milestone{
			Stage:     stage,
			Location:  locations[i],
			Date:      o.Date().AddDate(0, 0, defaultStageOffsets[i]).Format("2006-01-02"),
			Time:      defaultStageTimes[i],
			Completed: completed[i],
		})
	}

	return timeline, nil
}
