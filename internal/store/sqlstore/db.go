package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ShayCichocki/shikabom/internal/store"
)

// DB wraps a database/sql connection with ShikaBOM-specific operations.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// Compile-time verification that DB implements all interfaces.
var (
	_ store.Store        = (*DB)(nil)
	_ store.Migrator     = (*DB)(nil)
	_ store.PartStore    = (*DB)(nil)
	_ store.StorageStore = (*DB)(nil)
	_ store.StockStore   = (*DB)(nil)
	_ store.ProjectStore = (*DB)(nil)
)

// New wraps an already opened connection.
func New(conn *sql.DB, d Dialect) *DB {
	return &DB{conn: conn, dialect: d}
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn exposes the underlying *sql.DB.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Dialect returns the backend dialect.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// q rebinds a query written with '?' placeholders.
func (db *DB) q(query string) string {
	return db.dialect.Rebind(query)
}

// Transaction runs the given function within a transaction.
func (db *DB) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// classify maps driver errors onto store sentinels.
func (db *DB) classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case db.dialect.IsDuplicate(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}

func (db *DB) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := db.conn.QueryRowContext(ctx, db.q(query), args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (db *DB) partExists(ctx context.Context, pn string) (bool, error) {
	return db.exists(ctx, "SELECT 1 FROM parts WHERE partnumber = ?", pn)
}
