// Package postgres opens the Postgres backend of the store through pgx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/ShayCichocki/shikabom/internal/store/sqlstore"
)

const (
	defaultDriver = "pgx"
	// DefaultDSN points at a local database named after the application.
	DefaultDSN = "postgres://localhost/shikabom?sslmode=disable"

	uniqueViolation = "23505"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Dialect is the Postgres flavour of sqlstore.Dialect.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

func (Dialect) Name() string               { return "postgres" }
func (Dialect) Rebind(query string) string { return sqlstore.DollarRebind(query) }
func (Dialect) CreateView() string         { return "CREATE OR REPLACE VIEW" }

// IsDuplicate reports whether err carries a unique_violation SQLSTATE.
func (Dialect) IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Open connects to Postgres using dsn (falls back to DefaultDSN) and
// verifies the connection with a ping.
func Open(ctx context.Context, dsn string) (*sqlstore.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	openMu.Lock()
	conn, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return sqlstore.New(conn, Dialect{}), nil
}

// OverrideSQLOpen swaps the function used to open connections and returns
// a restore func. Tests use it to avoid a live server.
func OverrideSQLOpen(fn func(driverName, dsn string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}
