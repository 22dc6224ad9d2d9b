package database

import (
	"context"
	"fmt"
)

// Table is the single table holding the roster.
const Table = "students"

const sqliteSchema = `CREATE TABLE students (
	id    INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
	name  TEXT NOT NULL CHECK (length(trim(name)) > 0),
	grade REAL NOT NULL CHECK (grade >= 0 AND grade <= 100)
)`

const postgresSchema = `CREATE TABLE students (
	id    BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	name  TEXT NOT NULL CHECK (length(trim(name)) > 0),
	grade DOUBLE PRECISION NOT NULL CHECK (grade >= 0 AND grade <= 100)
)`

// SchemaError reports that the students table could not be checked or created.
// The service cannot run without the table, so callers treat it as fatal.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string { return "ensure schema: " + e.Err.Error() }

func (e *SchemaError) Unwrap() error { return e.Err }

// TableExists reports whether the students table is present.
func TableExists(ctx context.Context, db *DB) (bool, error) {
	var q string
	if db.Dialect == Postgres {
		q = `SELECT COUNT(*) FROM information_schema.tables
		     WHERE table_schema = current_schema() AND table_name = $1`
	} else {
		q = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	}

	var n int
	if err := db.QueryRowContext(ctx, q, Table).Scan(&n); err != nil {
		return false, fmt.Errorf("look up table %s: %w", Table, err)
	}
	return n > 0, nil
}

// EnsureSchema creates the students table if it does not exist yet.
// created is true only when this call created it.
func EnsureSchema(ctx context.Context, db *DB) (created bool, err error) {
	exists, err := TableExists(ctx, db)
	if err != nil {
		return false, &SchemaError{Err: err}
	}
	if exists {
		return false, nil
	}

	ddl := sqliteSchema
	if db.Dialect == Postgres {
		ddl = postgresSchema
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return false, &SchemaError{Err: fmt.Errorf("create table %s: %w", Table, err)}
	}
	return true, nil
}
