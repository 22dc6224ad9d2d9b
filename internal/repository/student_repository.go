package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/stemsi/roster/internal/database"
	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/query"
)

// ErrDuplicateID is returned by Insert when the id is already taken.
var ErrDuplicateID = errors.New("student with this id already exists")

// StoreError wraps a failure reported by the underlying store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// Records is a lazy, finite sequence of rows. Each range over it runs the
// statement again, so it can be restarted to observe fresh data. A store
// failure is yielded as the final element with a non-nil error.
type Records = iter.Seq2[model.StudentRecord, error]

// StudentRepository executes built statements against the students table.
type StudentRepository struct {
	db *database.DB
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db *database.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Insert runs a single-row insert.
func (r *StudentRepository) Insert(ctx context.Context, st query.Statement) error {
	if _, err := r.db.ExecContext(ctx, st.SQL, st.Args...); err != nil {
		if r.db.Dialect.IsDuplicateKey(err) {
			return ErrDuplicateID
		}
		return &StoreError{Op: "insert", Err: err}
	}
	return nil
}

// Remove runs a delete and returns the number of rows removed.
func (r *StudentRepository) Remove(ctx context.Context, st query.Statement) (int64, error) {
	return r.exec(ctx, "delete", st)
}

// Update runs an update and returns the number of rows changed.
func (r *StudentRepository) Update(ctx context.Context, st query.Statement) (int64, error) {
	return r.exec(ctx, "update", st)
}

func (r *StudentRepository) exec(ctx context.Context, op string, st query.Statement) (int64, error) {
	res, err := r.db.ExecContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return 0, &StoreError{Op: op, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StoreError{Op: op, Err: err}
	}
	return n, nil
}

// Query returns the rows selected by st. Nothing touches the store until
// the sequence is ranged over.
func (r *StudentRepository) Query(ctx context.Context, st query.Statement) Records {
	return func(yield func(model.StudentRecord, error) bool) {
		rows, err := r.db.QueryContext(ctx, st.SQL, st.Args...)
		if err != nil {
			yield(model.StudentRecord{}, &StoreError{Op: "query", Err: err})
			return
		}
		defer rows.Close()

		for rows.Next() {
			var s model.StudentRecord
			if err := rows.Scan(&s.ID, &s.Name, &s.Grade); err != nil {
				yield(model.StudentRecord{}, &StoreError{Op: "scan", Err: err})
				return
			}
			if !yield(s, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.StudentRecord{}, &StoreError{Op: "query", Err: err})
		}
	}
}

// Collect drains seq into a slice. The slice is non-nil even when empty.
func Collect(seq Records) ([]model.StudentRecord, error) {
	out := []model.StudentRecord{}
	for s, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
