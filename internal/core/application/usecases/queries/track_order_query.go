package queries

import (
	"errors"

	"expressia/internal/pkg/errs"
	"expressia/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery looks an order up by its public order number and projects
// its tracking state for display. The lookup is case-insensitive: the number
// is uppercased before matching.
type TrackOrderQuery struct {
	orderNumber string

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a tracking query for the given order number.
func NewTrackOrderQuery(orderNumber string) (TrackOrderQuery, error) {
	if orderNumber == "" {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return TrackOrderQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// OrderNumber returns the order number being tracked.
func (q TrackOrderQuery) OrderNumber() string {
	return q.orderNumber
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// TrackOrderMilestone is the display form of one timeline milestone.
type TrackOrderMilestone struct {
	Stage     string
	Location  string
	Date      string
	Time      string
	Completed bool
}

// TrackOrderQueryResponse is the tracking projection of one order.
//
// CurrentLocation is the location of the first incomplete milestone, or the
// destination when every milestone is completed. EstimatedDelivery is the
// date of the final milestone. Progress is a coarse percentage derived from
// the order status alone.
type TrackOrderQueryResponse struct {
	OrderNumber       string
	Status            string
	StatusLabel       string
	Origin            string
	Destination       string
	CurrentLocation   string
	EstimatedDelivery string
	Progress          int
	Timeline          []TrackOrderMilestone
}
