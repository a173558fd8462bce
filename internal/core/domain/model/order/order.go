package order

import (
	"errors"
	"fmt"
	"time"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/tracking"
	"expressia/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrTimelineAlreadyExists is returned when attaching a timeline to an order
	// that already has one. Timelines are materialized at most once.
	ErrTimelineAlreadyExists = errors.New("order already has a timeline")

	// ErrOrderDelivered is returned when mutating the tracking of a delivered
	// order. A delivered order's tracking is immutable.
	ErrOrderDelivered = errors.New("tracking of a delivered order cannot be edited")
)

// Dimensions are the parcel's edge lengths in centimeters.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// Volume returns the parcel volume in cubic meters.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height / 1_000_000
}

// Order represents one shipment in the system. It is the aggregate root that
// manages the order's identity, route, commercial attributes, tracking
// timeline, and append-only audit history.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number;
//     the order number is immutable once assigned
//   - Must have a non-empty origin and destination and a positive weight
//   - The coarse status of a non-canceled order with a timeline matches the
//     value derivable from that timeline after every timeline commit
//   - A delivered order's tracking is immutable
//   - History is append-only; entries are never rewritten or removed
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id          kernel.UUID
	orderNumber string
	origin      string
	destination string
	weight      float64
	dimensions  Dimensions
	modality    Modality
	description string
	cost        float64
	date        time.Time
	status      Status
	owner       *Owner
	timeline    tracking.Timeline
	history     []HistoryEvent

	isConstructed bool
}

// NewOrder creates a new Order in pending status with no timeline. The
// timeline is materialized lazily the first time the order's tracking is
// viewed or edited.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - orderNumber: unique human-readable code (immutable once assigned)
//   - origin, destination: route country names
//   - weight: parcel weight in kilograms (must be positive)
//   - dimensions: parcel edge lengths in centimeters
//   - modality: service tier
//   - description: free-text parcel description
//   - cost: estimated (not authoritative) monetary amount
//   - date: creation date
//   - owner: optional owning identity; nil for unowned orders
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	origin string,
	destination string,
	weight float64,
	dimensions Dimensions,
	modality Modality,
	description string,
	cost float64,
	date time.Time,
	owner *Owner,
) (*Order, error) {
	o := &Order{
		dimensions:    dimensions,
		description:   description,
		owner:         owner,
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setRoute(origin, destination),
		o.setWeight(weight),
		o.setModality(modality),
		o.setCost(cost),
		o.setDate(date),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its coarse
// status, timeline, and history. It applies the same field validation as
// NewOrder so malformed persisted data is caught at the repository boundary.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	origin string,
	destination string,
	weight float64,
	dimensions Dimensions,
	modality Modality,
	description string,
	cost float64,
	date time.Time,
	status Status,
	owner *Owner,
	timeline tracking.Timeline,
	history []HistoryEvent,
) (*Order, error) {
	o, err := NewOrder(id, orderNumber, origin, destination, weight, dimensions, modality, description, cost, date, owner)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.timeline = timeline.Clone()
	o.history = append([]HistoryEvent(nil), history...)
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the order's immutable human-readable code.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Origin returns the route's origin country.
func (o *Order) Origin() string {
	return o.origin
}

// Destination returns the route's destination country.
func (o *Order) Destination() string {
	return o.destination
}

// Weight returns the parcel weight in kilograms.
func (o *Order) Weight() float64 {
	return o.weight
}

// Dimensions returns the parcel's edge lengths.
func (o *Order) Dimensions() Dimensions {
	return o.dimensions
}

// Modality returns the shipment's service tier.
func (o *Order) Modality() Modality {
	return o.modality
}

// Description returns the free-text parcel description.
func (o *Order) Description() string {
	return o.description
}

// Cost returns the estimated shipping cost.
func (o *Order) Cost() float64 {
	return o.cost
}

// Date returns the order's creation date.
func (o *Order) Date() time.Time {
	return o.date
}

// Status returns the current coarse status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Owner returns the owning identity, or nil for unowned orders.
func (o *Order) Owner() *Owner {
	return o.owner
}

// HasTimeline reports whether the order's timeline has been materialized.
func (o *Order) HasTimeline() bool {
	return len(o.timeline) > 0
}

// Timeline returns an independent copy of the order's timeline, or nil when
// no timeline has been materialized yet.
func (o *Order) Timeline() tracking.Timeline {
	return o.timeline.Clone()
}

// History returns a copy of the order's append-only audit log.
func (o *Order) History() []HistoryEvent {
	return append([]HistoryEvent(nil), o.history...)
}

// AttachTimeline materializes the order's timeline. It may be called only
// once per order; lazy materialization is not an edit, so no history event
// is recorded.
func (o *Order) AttachTimeline(timeline tracking.Timeline) error {
	if o.HasTimeline() {
		return ErrTimelineAlreadyExists
	}
	if len(timeline) == 0 {
		return errs.NewValueIsRequiredError("timeline")
	}

	o.timeline = timeline.Clone()
	return nil
}

// OverrideStatus sets the coarse status directly, bypassing the timeline, and
// appends a status history event. The timeline is left untouched, so status
// may diverge from the timeline-derivable value until the next timeline
// commit; that divergence is accepted behavior.
func (o *Order) OverrideStatus(status Status, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.status = status
	o.history = append(o.history, HistoryEvent{
		Type:  HistoryEventStatus,
		At:    at,
		Value: status,
	})
	return nil
}

// ApplyTimeline replaces the order's timeline with a committed draft, sets
// the derived coarse status, and appends a tracking history event carrying
// the new status and a full snapshot of the committed timeline.
//
// Returns ErrOrderDelivered when the order is already delivered: a delivered
// order's tracking is immutable.
func (o *Order) ApplyTimeline(timeline tracking.Timeline, derived Status, at time.Time) error {
	if o.status == StatusDelivered {
		return ErrOrderDelivered
	}
	if err := derived.Validate(); err != nil {
		return err
	}
	if len(timeline) == 0 {
		return errs.NewValueIsRequiredError("timeline")
	}

	o.timeline = timeline.Clone()
	o.status = derived
	o.history = append(o.history, HistoryEvent{
		Type:     HistoryEventTracking,
		At:       at,
		Value:    derived,
		Snapshot: timeline.Clone(),
	})
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setRoute(origin, destination string) error {
	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	o.origin = origin
	o.destination = destination
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	o.weight = weight
	return nil
}

func (o *Order) setModality(modality Modality) error {
	if err := modality.Validate(); err != nil {
		return err
	}
	o.modality = modality
	return nil
}

func (o *Order) setCost(cost float64) error {
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost", fmt.Errorf("%v is negative", cost))
	}
	o.cost = cost
	return nil
}

func (o *Order) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	o.date = date
	return nil
}
