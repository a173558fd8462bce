package tracking

import "regexp"

// TimeEstimated is the sentinel stored in the time field of a milestone whose
// clock time is not yet known.
const TimeEstimated = "Estimado"

// Date and time fields are free text at the edges of the system; a field takes
// part in chronology checks only when it looks like a calendar date or clock
// time. The patterns are deliberately unanchored: "approx. 2025-09-18" still
// counts as dated.
var (
	dateLikeRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	timeLikeRe = regexp.MustCompile(`\d{2}:\d{2}`)
)

// Milestone is one stage of a shipment's timeline: where the parcel was (or
// will be), when, and whether the stage has happened yet.
type Milestone struct {
	// Stage is the milestone's identity within the canonical flow.
	Stage Stage

	// Location is free text describing where this stage takes place.
	Location string

	// Date is the calendar date of the stage in YYYY-MM-DD form,
	// or free text when not yet scheduled.
	Date string

	// Time is the clock time in HH:MM form (optionally with seconds),
	// or TimeEstimated when the time is not yet known.
	Time string

	// Completed reports whether this stage has happened.
	Completed bool
}

// HasWellFormedDate reports whether the milestone's date takes part in
// chronology comparisons.
func (m Milestone) HasWellFormedDate() bool {
	return m.Date != "" && dateLikeRe.MatchString(m.Date)
}

// HasWellFormedTime reports whether the milestone's time takes part in
// chronology comparisons. The TimeEstimated sentinel is not a clock time.
func (m Milestone) HasWellFormedTime() bool {
	return m.Time != "" && timeLikeRe.MatchString(m.Time)
}

// DateTime combines the milestone's date and time into an ISO-like string
// (YYYY-MM-DDTHH:MM:SS) suitable for lexicographic ordering. The second
// return value is false when either field is not well-formed.
func (m Milestone) DateTime() (string, bool) {
	if !m.HasWellFormedDate() || !m.HasWellFormedTime() {
		return "", false
	}
	t := m.Time
	if len(t) == 5 {
		t += ":00"
	}
	return m.Date + "T" + t, true
}
