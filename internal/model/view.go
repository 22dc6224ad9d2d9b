package model

import "fmt"

// SortField is a column the roster may be ordered by.
type SortField string

const (
	SortByID    SortField = "id"
	SortByGrade SortField = "grade"
)

// SortDirection is the ordering applied to a SortField.
type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

// SortSpec orders all rows by one field.
type SortSpec struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// ViewKind tells which criterion a ViewSpec carries.
type ViewKind int

const (
	ViewDefault ViewKind = iota
	ViewSort
	ViewSearch
)

// ViewSpec is the sort or filter criterion currently governing what is
// displayed. The zero value is the default "all records, unsorted" view.
type ViewSpec struct {
	Kind     ViewKind `json:"kind"`
	Sort     SortSpec `json:"sort,omitempty"`
	SearchID int64    `json:"search_id,omitempty"`
}

// DefaultView returns the startup view: every record, no ordering.
func DefaultView() ViewSpec { return ViewSpec{Kind: ViewDefault} }

// SortView returns a view ordering all records by s.
func SortView(s SortSpec) ViewSpec { return ViewSpec{Kind: ViewSort, Sort: s} }

// SearchView returns a view filtered to the record with the given id.
func SearchView(id int64) ViewSpec { return ViewSpec{Kind: ViewSearch, SearchID: id} }

func (v ViewSpec) String() string {
	switch v.Kind {
	case ViewSort:
		return fmt.Sprintf("sorted by %s %s", v.Sort.Field, v.Sort.Direction)
	case ViewSearch:
		return fmt.Sprintf("search id %d", v.SearchID)
	default:
		return "all records"
	}
}
