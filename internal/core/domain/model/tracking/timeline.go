package tracking

// Timeline is the ordered milestone sequence of one order. A nil Timeline
// means the order's timeline has not been materialized yet.
type Timeline []Milestone

// Clone returns an independent copy of the timeline. Edits to the copy never
// leak into the original.
func (t Timeline) Clone() Timeline {
	if t == nil {
		return nil
	}
	cloned := make(Timeline, len(t))
	copy(cloned, t)
	return cloned
}

// StageCompleted reports whether the milestone with the given stage identity
// exists and is completed.
func (t Timeline) StageCompleted(stage Stage) bool {
	for _, m := range t {
		if m.Stage == stage {
			return m.Completed
		}
	}
	return false
}

// FirstIncomplete returns the first milestone that has not happened yet.
// The second return value is false when every milestone is completed.
func (t Timeline) FirstIncomplete() (Milestone, bool) {
	for _, m := range t {
		if !m.Completed {
			return m, true
		}
	}
	return Milestone{}, false
}
