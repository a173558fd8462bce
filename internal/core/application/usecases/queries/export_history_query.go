package queries

import (
	"errors"

	"expressia/internal/pkg/guard"
)

var ErrExportHistoryQueryIsNotConstructed = errors.New(
	"ExportHistoryQuery must be created via NewExportHistoryQuery constructor",
)

// ExportHistoryQuery produces a plain-text audit report of every order and
// its history events.
type ExportHistoryQuery struct {
	guard guard.ConstructorGuard
}

// NewExportHistoryQuery creates a history export query.
func NewExportHistoryQuery() ExportHistoryQuery {
	return ExportHistoryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ExportHistoryQuery) Validate() error {
	return q.guard.Validate(ErrExportHistoryQueryIsNotConstructed)
}

// ExportHistoryQueryResponse carries the generated report.
type ExportHistoryQueryResponse struct {
	FileName string
	Content  string
}
