package model

import "time"

// UserConstraints are the hard and soft limits a replan must respect.
// PreferredModes is a hint only: spec.md §3 allows the core to use any
// mode when replanning; the replan pipeline reads its first entry to pick
// the mode the matrix fan-out queries per edge.
type UserConstraints struct {
	BudgetCents    int       `json:"budgetCents"`
	ReturnDeadline time.Time `json:"returnDeadline"`
	PreferredModes []Mode    `json:"preferredModes"`
}

// FirstPreferredMode returns the first entry in PreferredModes, or Transit
// if the list is empty (a sane, always-available default).
func (u *UserConstraints) FirstPreferredMode() Mode {
	if len(u.PreferredModes) == 0 {
		return Transit
	}
	return u.PreferredModes[0]
}

// DeadlineSeconds returns max(1, deadline-now) in seconds, falling back to
// 3600s if the deadline is the zero time (unparseable upstream), per
// spec.md §4.5 stage 3.
func (u *UserConstraints) DeadlineSeconds(now time.Time) int {
	if u.ReturnDeadline.IsZero() {
		return 3600
	}
	secs := int(u.ReturnDeadline.Sub(now).Seconds())
	if secs < 1 {
		return 1
	}
	return secs
}
