package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/rs/zerolog"
	"github.com/stemsi/roster/internal/config"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DB is the single store connection held for the service's lifetime.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open opens and validates the store named by cfg.DatabaseURL.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*DB, error) {
	dialect, dsn := ParseURL(cfg.DatabaseURL)

	sqldb, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}

	if dialect == SQLite {
		// One shared connection; the caller issues one operation at a time.
		sqldb.SetMaxOpenConns(1)
	}

	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().
		Str("dialect", dialect.String()).
		Msg("Database connected")

	return &DB{DB: sqldb, Dialect: dialect}, nil
}

// ParseURL picks the dialect for url and returns the DSN to hand its driver.
// postgres:// and postgresql:// URLs select PostgreSQL; anything else is a
// SQLite file path, with an optional "sqlite://" prefix stripped.
func ParseURL(url string) (Dialect, string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Postgres, url
	case strings.HasPrefix(url, "sqlite://"):
		return SQLite, withBusyTimeout(strings.TrimPrefix(url, "sqlite://"))
	default:
		return SQLite, withBusyTimeout(url)
	}
}

func withBusyTimeout(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)"
}
