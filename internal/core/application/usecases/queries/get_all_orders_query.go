// Package queries contains read operations over the order collection.
// Implements the Query side of the CQRS architecture: handlers read directly
// from the database or the repository and return read models, never touching
// the write path.
package queries

import (
	"errors"
	"time"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves the order collection, optionally narrowed by a
// search term and a coarse status.
//
// The search term matches the order number and the owner name
// case-insensitively; an empty term matches everything. The status filter
// must be a valid wire status or empty to match all statuses.
type GetAllOrdersQuery struct {
	search string
	status string

	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query for the order collection. Both filters
// may be empty.
func NewGetAllOrdersQuery(search string, status string) (GetAllOrdersQuery, error) {
	if status != "" {
		if _, err := order.StatusFromString(status); err != nil {
			return GetAllOrdersQuery{}, err
		}
	}

	return GetAllOrdersQuery{
		search: search,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Search returns the search term filter.
func (q GetAllOrdersQuery) Search() string {
	return q.search
}

// Status returns the wire status filter.
func (q GetAllOrdersQuery) Status() string {
	return q.status
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// GetAllOrdersQueryResponse is the list read model of one order.
type GetAllOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	OwnerName   string
	OwnerEmail  string
	Origin      string
	Destination string
	Status      string
	Date        time.Time
	Cost        float64
	Weight      float64
	Modality    string
	Description string
}
