package view

import "github.com/stemsi/roster/internal/model"

// Tracker remembers the last sort or search the user ran so that the rows
// shown after an insert, update or delete keep that ordering or filter.
// It starts in the default view. It is not safe for concurrent use.
type Tracker struct {
	spec model.ViewSpec
}

// NewTracker creates a Tracker in the default view.
func NewTracker() *Tracker {
	return &Tracker{spec: model.DefaultView()}
}

// RecordViewed replaces the remembered view. Call it only after a sort or
// search has succeeded.
func (t *Tracker) RecordViewed(spec model.ViewSpec) {
	t.spec = spec
}

// Current returns the view to refresh with after a mutation.
func (t *Tracker) Current() model.ViewSpec {
	return t.spec
}
