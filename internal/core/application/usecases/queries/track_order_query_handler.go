package queries

import (
	"context"
	"strings"

	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/model/tracking"
	"expressia/internal/core/domain/services"
	"expressia/internal/core/ports"
)

// TrackOrderQueryHandler projects one order's tracking state for display.
//
// Unlike the list queries this handler goes through the repository and the
// domain services instead of raw SQL: the projection needs the materialized
// timeline, and orders persisted without one get the default milestone
// sequence synthesized on the fly. That synthesized timeline is not written
// back; materialization only persists through the editing flow.
type TrackOrderQueryHandler struct {
	orderRepository ports.OrderRepository
	builder         services.TimelineBuilder
	deriver         services.StatusDeriver
}

// NewTrackOrderQueryHandler creates a handler for tracking queries.
func NewTrackOrderQueryHandler(
	orderRepository ports.OrderRepository,
	builder services.TimelineBuilder,
	deriver services.StatusDeriver,
) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{
		orderRepository: orderRepository,
		builder:         builder,
		deriver:         deriver,
	}
}

// Handle executes the query. Returns an errs.ObjectNotFoundError when no
// order carries the given number.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	orderNumber := strings.ToUpper(strings.TrimSpace(query.OrderNumber()))
	o, err := h.orderRepository.GetByNumber(ctx, orderNumber)
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	timeline := o.Timeline()
	if !o.HasTimeline() {
		timeline, err = h.builder.Build(o)
		if err != nil {
			return TrackOrderQueryResponse{}, err
		}
	}

	status := h.deriver.Derive(timeline, o.Status())
	currentLocation := o.Destination()
	if m, ok := timeline.FirstIncomplete(); ok {
		currentLocation = m.Location
	}

	milestones := make([]TrackOrderMilestone, 0, len(timeline))
	for _, m := range timeline {
		milestones = append(milestones, TrackOrderMilestone{
			Stage:     m.Stage.Label(),
			Location:  m.Location,
			Date:      m.Date,
			Time:      m.Time,
			Completed: m.Completed,
		})
	}

	return TrackOrderQueryResponse{
		OrderNumber:       o.OrderNumber(),
		Status:            status.String(),
		StatusLabel:       statusLabel(status),
		Origin:            o.Origin(),
		Destination:       o.Destination(),
		CurrentLocation:   currentLocation,
		EstimatedDelivery: estimatedDelivery(timeline),
		Progress:          progressFor(status),
		Timeline:          milestones,
	}, nil
}

// estimatedDelivery is the date of the final milestone.
func estimatedDelivery(timeline tracking.Timeline) string {
	if len(timeline) == 0 {
		return ""
	}
	return timeline[len(timeline)-1].Date
}

func progressFor(status order.Status) int {
	switch status {
	case order.StatusPending:
		return 25
	case order.StatusInTransit:
		return 60
	case order.StatusDelivered:
		return 100
	default:
		return 15
	}
}

func statusLabel(status order.Status) string {
	switch status {
	case order.StatusPending:
		return "Pendiente"
	case order.StatusInTransit:
		return "En Tránsito"
	case order.StatusDelivered:
		return "Entregado"
	default:
		return status.String()
	}
}
