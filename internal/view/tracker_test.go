package view

import (
	"testing"

	"github.com/stemsi/roster/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestTrackerTransitions(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, model.DefaultView(), tr.Current())

	byGrade := model.SortView(model.SortSpec{Field: model.SortByGrade, Direction: model.Descending})
	tr.RecordViewed(byGrade)
	assert.Equal(t, byGrade, tr.Current())

	tr.RecordViewed(model.SearchView(5))
	assert.Equal(t, model.ViewSearch, tr.Current().Kind)
	assert.EqualValues(t, 5, tr.Current().SearchID)
}

func TestViewSpecString(t *testing.T) {
	assert.Equal(t, "all records", model.DefaultView().String())
	assert.Equal(t, "search id 3", model.SearchView(3).String())
	assert.Equal(t, "sorted by grade descending",
		model.SortView(model.SortSpec{Field: model.SortByGrade, Direction: model.Descending}).String())
}
