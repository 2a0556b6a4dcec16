package sqlstore

import (
	"context"
	"fmt"
)

// Migration is one versioned schema step. Statements run in order inside
// a single transaction.
type Migration struct {
	Version    int
	Statements []string
}

// Migrations returns the schema history for the given dialect.
func Migrations(d Dialect) []Migration {
	return []Migration{
		{1, []string{ddlParts, ddlStorageLocs, ddlPartStorage}},
		{2, []string{d.CreateView() + viewBigPart}},
		{3, []string{ddlStock}},
		{4, []string{ddlProjects, ddlProjectComponents, ddlProjectComponentsIndex}},
	}
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range Migrations(db.dialect) {
		if m.Version <= current {
			continue
		}

		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		for _, stmt := range m.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("apply migration v%d: %w", m.Version, err)
			}
		}

		if _, err := tx.ExecContext(ctx, db.q("INSERT INTO schema_version (version) VALUES (?)"), m.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration v%d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration v%d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration, or 0 on a fresh database.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	row := db.conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&v); err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return v, nil
}

const ddlParts = `
CREATE TABLE IF NOT EXISTS parts (
	partnumber TEXT PRIMARY KEY,
	manufacturer TEXT,
	description TEXT,
	label TEXT,
	package TEXT,
	value TEXT,
	tolerance TEXT
)`

const ddlStorageLocs = `
CREATE TABLE IF NOT EXISTS storage_locs (
	storage_loc_id TEXT PRIMARY KEY,
	storage_loc_name TEXT NOT NULL UNIQUE
)`

const ddlPartStorage = `
CREATE TABLE IF NOT EXISTS part_storage (
	partnumber TEXT NOT NULL REFERENCES parts(partnumber),
	storage_loc_id TEXT NOT NULL REFERENCES storage_locs(storage_loc_id),
	quantity BIGINT NOT NULL DEFAULT 0,
	PRIMARY KEY (partnumber, storage_loc_id)
)`

const viewBigPart = ` big_part_view AS
SELECT
	p.partnumber,
	CAST(COALESCE(SUM(ps.quantity), 0) AS BIGINT) AS total_qty,
	p.manufacturer,
	p.description,
	p.label,
	p.package,
	p.value,
	p.tolerance
FROM parts p
LEFT JOIN part_storage ps ON ps.partnumber = p.partnumber
GROUP BY p.partnumber, p.manufacturer, p.description, p.label, p.package, p.value, p.tolerance`

const ddlStock = `
CREATE TABLE IF NOT EXISTS stock (
	partnumber TEXT PRIMARY KEY REFERENCES parts(partnumber),
	low_stock_threshold BIGINT NOT NULL DEFAULT 0,
	on_order BIGINT NOT NULL DEFAULT 0,
	in_prod BIGINT NOT NULL DEFAULT 0
)`

const ddlProjects = `
CREATE TABLE IF NOT EXISTS projects (
	project_name TEXT PRIMARY KEY
)`

const ddlProjectComponents = `
CREATE TABLE IF NOT EXISTS project_components (
	project_name TEXT NOT NULL REFERENCES projects(project_name),
	partnumber TEXT NOT NULL REFERENCES parts(partnumber),
	designators TEXT NOT NULL DEFAULT '',
	qty BIGINT NOT NULL,
	PRIMARY KEY (project_name, partnumber)
)`

const ddlProjectComponentsIndex = `
CREATE INDEX IF NOT EXISTS idx_project_components_partnumber ON project_components(partnumber)`
