package order

import (
	"time"

	"expressia/internal/core/domain/model/tracking"
)

// HistoryEventType classifies an audit log entry.
type HistoryEventType string

const (
	// HistoryEventStatus records a direct coarse-status override.
	HistoryEventStatus HistoryEventType = "status"

	// HistoryEventTracking records a committed timeline edit.
	HistoryEventTracking HistoryEventType = "tracking"
)

// HistoryEvent is one entry of an order's append-only audit log.
// Status events carry the new coarse status in Value; tracking events carry
// the derived status in Value plus a full snapshot of the committed timeline.
type HistoryEvent struct {
	Type     HistoryEventType
	At       time.Time
	Value    Status
	Snapshot tracking.Timeline
}
