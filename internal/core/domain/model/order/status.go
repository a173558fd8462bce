package order

import (
	"fmt"

	"expressia/internal/pkg/errs"
)

// Status is the coarse four-value summary of an order shown outside the
// timeline detail view. For non-canceled orders with a timeline it is always
// re-derivable from milestone completion state; Canceled is sticky and
// overrides any timeline-derived value.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a freshly created order.
	StatusPending

	// StatusInTransit indicates the parcel is on its way.
	StatusInTransit

	// StatusDelivered indicates the parcel reached the recipient.
	// Tracking of a delivered order is immutable.
	StatusDelivered

	// StatusCanceled indicates the order was canceled. Cancellation is a
	// status value, not removal, and cannot be reversed by timeline edits.
	StatusCanceled
)

// getStatusStrings returns the wire representation of every status.
// These strings are persisted and exposed to collaborating UIs.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusPending:   "pendiente",
		StatusInTransit: "en-transito",
		StatusDelivered: "entregado",
		StatusCanceled:  "cancelado",
	}
}

// StatusFromString resolves a persisted wire string back to its Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// String returns the wire representation of the status.
// Returns "unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}
