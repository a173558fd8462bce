package services

import (
	"fmt"

	"expressia/internal/core/domain/model/tracking"
)

// ChronologyResult reports the outcome of a chronology check. When OK is
// false, Index is the 1-based position of the first offending milestone and
// Message a human-readable reason identifying whether the date or the time
// regressed.
type ChronologyResult struct {
	OK      bool
	Index   int
	Message string
}

// ChronologyValidator checks a milestone sequence for date/time monotonicity.
// Validation is deterministic and pure: re-validating an unchanged timeline
// always returns the same result.
type ChronologyValidator struct{}

// NewChronologyValidator creates a new ChronologyValidator instance.
func NewChronologyValidator() ChronologyValidator {
	return ChronologyValidator{}
}

// Validate walks the milestones in canonical order, tracking the last seen
// date and the last seen combined date+time. A milestone with a well-formed
// date fails if it is earlier than the last seen date; if it additionally has
// a well-formed clock time, the combined ISO-like date-time must not regress
// either. ISO strings compare safely lexicographically, so no parsing into
// time.Time is needed.
//
// Milestones whose date or time is not well-formed (missing, free text, or
// the "Estimado" sentinel) are skipped for the corresponding comparison and
// leave the tracking state untouched. The first violation short-circuits.
func (v ChronologyValidator) Validate(timeline tracking.Timeline) ChronologyResult {
	var lastDate, lastDateTime string

	for i, m := range timeline {
		if !m.HasWellFormedDate() {
			continue
		}

		if lastDate != "" && m.Date < lastDate {
			return ChronologyResult{
				Index:   i + 1,
				Message: fmt.Sprintf("La fecha del paso %d es anterior a un paso previo", i+1),
			}
		}
		lastDate = m.Date

		if combined, ok := m.DateTime(); ok {
			if lastDateTime != "" && combined < lastDateTime {
				return ChronologyResult{
					Index:   i + 1,
					Message: fmt.Sprintf("La hora del paso %d es anterior a un paso previo", i+1),
				}
			}
			lastDateTime = combined
		}
	}

	return ChronologyResult{OK: true}
}
