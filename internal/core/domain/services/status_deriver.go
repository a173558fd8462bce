package services

import (
	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/model/tracking"
)

// StatusDeriver maps a milestone sequence to the coarse order status. The
// result is always re-derivable from the timeline it was computed from; it is
// never cached independently.
type StatusDeriver struct{}

// NewStatusDeriver creates a new StatusDeriver instance.
func NewStatusDeriver() StatusDeriver {
	return StatusDeriver{}
}

// Derive computes the coarse status from the timeline and the order's current
// status. The rule, in priority order:
//
//  1. A canceled order stays canceled; cancellation is sticky and cannot be
//     reversed by timeline edits.
//  2. If the Delivered stage is completed, the order is delivered.
//  3. If the InTransit stage is completed, the order is in transit.
//  4. Otherwise the order is pending.
//
// Only the named terminal stages drive derivation; the count of completed
// stages does not.
func (d StatusDeriver) Derive(timeline tracking.Timeline, current order.Status) order.Status {
	if current == order.StatusCanceled {
		return order.StatusCanceled
	}
	if timeline.StageCompleted(tracking.StageDelivered) {
		return order.StatusDelivered
	}
	if timeline.StageCompleted(tracking.StageInTransit) {
		return order.StatusInTransit
	}
	return order.StatusPending
}
