package tracking

import (
	"errors"
	"fmt"

	"expressia/internal/pkg/errs"
)

// ErrDraftIsNotConstructed is returned when a Draft instance was not created
// through the NewDraft factory method.
var ErrDraftIsNotConstructed = errors.New("Draft must be created via NewDraft constructor")

// Field names a mutable attribute of a draft milestone. Stage identity and
// milestone order are not fields: they are fixed by the canonical flow.
type Field string

const (
	// FieldLocation is the milestone's free-text location.
	FieldLocation Field = "location"

	// FieldDate is the milestone's calendar date.
	FieldDate Field = "date"

	// FieldTime is the milestone's clock time or the "Estimado" sentinel.
	FieldTime Field = "time"
)

// Draft is a mutable working copy of a timeline, held by an open edit session.
// Mutations apply only to the draft; the order it was copied from is untouched
// until the session commits. Field edits are not validated immediately;
// chronology is checked as a whole at commit time.
//
// Draft enforces the monotonic-prefix completion invariant: clearing the
// completed flag of milestone i clears every later milestone as well. Setting
// a flag does not auto-complete earlier stages; keeping forward completion
// sequential is the caller's concern.
type Draft struct {
	milestones []Milestone

	isConstructed bool
}

// NewDraft creates a draft holding an independent copy of the given timeline.
func NewDraft(timeline Timeline) *Draft {
	return &Draft{
		milestones:    timeline.Clone(),
		isConstructed: true,
	}
}

// Validate ensures the Draft instance was properly constructed through NewDraft.
func (d *Draft) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDraftIsNotConstructed
	}
	return nil
}

// Len returns the number of milestones in the draft.
func (d *Draft) Len() int {
	return len(d.milestones)
}

// UpdateField mutates one milestone's location, date, or time.
func (d *Draft) UpdateField(index int, field Field, value string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}

	switch field {
	case FieldLocation:
		d.milestones[index].Location = value
	case FieldDate:
		d.milestones[index].Date = value
	case FieldTime:
		d.milestones[index].Time = value
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"field",
			fmt.Errorf("%q is not an editable milestone field", field),
		)
	}

	return nil
}

// ToggleCompleted sets milestone index's completion flag. Clearing a flag
// cascades: every later milestone is forced incomplete so completions always
// form a prefix of the canonical flow.
func (d *Draft) ToggleCompleted(index int, completed bool) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}

	d.milestones[index].Completed = completed
	if !completed {
		for i := index + 1; i < len(d.milestones); i++ {
			d.milestones[i].Completed = false
		}
	}

	return nil
}

// Timeline returns an independent snapshot of the draft's current state.
func (d *Draft) Timeline() Timeline {
	return Timeline(d.milestones).Clone()
}

func (d *Draft) checkIndex(index int) error {
	if index < 0 || index >= len(d.milestones) {
		return errs.NewValueIsOutOfRangeError("milestone index", index, 0, len(d.milestones)-1)
	}
	return nil
}
