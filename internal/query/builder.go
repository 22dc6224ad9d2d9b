// Package query assembles the parameterized statements run against the
// students table. Values supplied by a user only ever travel in
// Statement.Args; the SQL text is built from constants and a closed set of
// column and direction keywords.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stemsi/roster/internal/model"
)

var (
	// ErrNothingToUpdate is returned by Update when neither a name nor a
	// grade was supplied. No statement is produced.
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrUnsupportedSort matches every *UnsupportedSortError.
	ErrUnsupportedSort = errors.New("unsupported sort")
)

// UnsupportedSortError reports a sort field or direction outside the
// enumerated set. Param is "field" or "order".
type UnsupportedSortError struct {
	Param string
	Value string
}

func (e *UnsupportedSortError) Error() string {
	return fmt.Sprintf("unsupported sort %s %q", e.Param, e.Value)
}

func (e *UnsupportedSortError) Is(target error) bool { return target == ErrUnsupportedSort }

const (
	table   = "students"
	columns = "id, name, grade"
)

// Dialect renders bind markers for the target store.
type Dialect interface {
	Placeholder(n int) string
}

// Statement is SQL text plus the values bound to its placeholders.
type Statement struct {
	SQL  string
	Args []any
}

// Builder produces statements for one dialect.
type Builder struct {
	dialect Dialect
}

// NewBuilder creates a new Builder.
func NewBuilder(d Dialect) *Builder {
	return &Builder{dialect: d}
}

// Insert builds a single-row insert of r.
func (b *Builder) Insert(r model.StudentRecord) Statement {
	return Statement{
		SQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s, %s, %s)", table, columns,
			b.dialect.Placeholder(1), b.dialect.Placeholder(2), b.dialect.Placeholder(3)),
		Args: []any{r.ID, r.Name, r.Grade},
	}
}

// Delete builds a delete of the record with the given id.
func (b *Builder) Delete(id int64) Statement {
	return Statement{
		SQL:  fmt.Sprintf("DELETE FROM %s WHERE id = %s", table, b.dialect.Placeholder(1)),
		Args: []any{id},
	}
}

// Update builds a statement setting only the fields that are non-nil, name
// before grade. With both nil it returns ErrNothingToUpdate.
func (b *Builder) Update(id int64, name *string, grade *float64) (Statement, error) {
	var (
		sets []string
		args []any
	)
	if name != nil {
		args = append(args, *name)
		sets = append(sets, "name = "+b.dialect.Placeholder(len(args)))
	}
	if grade != nil {
		args = append(args, *grade)
		sets = append(sets, "grade = "+b.dialect.Placeholder(len(args)))
	}
	if len(sets) == 0 {
		return Statement{}, ErrNothingToUpdate
	}

	args = append(args, id)
	return Statement{
		SQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = %s", table,
			strings.Join(sets, ", "), b.dialect.Placeholder(len(args))),
		Args: args,
	}, nil
}

// Sort builds a select of every row ordered by s.
func (b *Builder) Sort(s model.SortSpec) (Statement, error) {
	var dir string
	switch s.Direction {
	case model.Ascending:
		dir = "ASC"
	case model.Descending:
		dir = "DESC"
	default:
		return Statement{}, &UnsupportedSortError{Param: "order", Value: string(s.Direction)}
	}

	var order string
	switch s.Field {
	case model.SortByID:
		order = "id " + dir
	case model.SortByGrade:
		// Equal grades keep a stable id order.
		order = "grade " + dir + ", id ASC"
	default:
		return Statement{}, &UnsupportedSortError{Param: "field", Value: string(s.Field)}
	}

	return Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", columns, table, order),
	}, nil
}

// SearchByID builds a select of the record with the given id.
func (b *Builder) SearchByID(id int64) Statement {
	return Statement{
		SQL:  fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", columns, table, b.dialect.Placeholder(1)),
		Args: []any{id},
	}
}

// DefaultSelect builds the startup view: every row, no ordering clause.
func (b *Builder) DefaultSelect() Statement {
	return Statement{SQL: fmt.Sprintf("SELECT %s FROM %s", columns, table)}
}

// ForView builds the select that renders v.
func (b *Builder) ForView(v model.ViewSpec) (Statement, error) {
	switch v.Kind {
	case model.ViewSort:
		return b.Sort(v.Sort)
	case model.ViewSearch:
		return b.SearchByID(v.SearchID), nil
	default:
		return b.DefaultSelect(), nil
	}
}
