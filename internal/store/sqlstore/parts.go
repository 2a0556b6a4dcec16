package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

const selectBigPart = `SELECT partnumber, total_qty, manufacturer, description, label, package, value, tolerance FROM big_part_view`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPart reads one big_part_view row. NULL attributes read as "".
func scanPart(r rowScanner) (models.Part, error) {
	var (
		p                                       models.Part
		mfg, desc, label, pkg, value, tolerance sql.NullString
	)
	if err := r.Scan(&p.PartNumber, &p.TotalQty, &mfg, &desc, &label, &pkg, &value, &tolerance); err != nil {
		return models.Part{}, err
	}
	p.Manufacturer = mfg.String
	p.Description = desc.String
	p.Label = label.String
	p.Package = pkg.String
	p.Value = value.String
	p.Tolerance = tolerance.String
	return p, nil
}

// ListParts returns every part ordered by part number.
func (db *DB) ListParts(ctx context.Context) ([]models.Part, error) {
	rows, err := db.conn.QueryContext(ctx, selectBigPart+" ORDER BY partnumber")
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	parts := []models.Part{}
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parts: %w", err)
	}
	return parts, nil
}

// GetPart retrieves a part by part number.
func (db *DB) GetPart(ctx context.Context, pn string) (*models.Part, error) {
	row := db.conn.QueryRowContext(ctx, db.q(selectBigPart+" WHERE partnumber = ?"), pn)
	p, err := scanPart(row)
	if err != nil {
		return nil, fmt.Errorf("get part %s: %w", pn, db.classify(err))
	}
	return &p, nil
}

// CreatePart inserts a new part.
func (db *DB) CreatePart(ctx context.Context, p *models.Part) error {
	if err := store.ValidatePart(p); err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	_, err := db.conn.ExecContext(ctx, db.q(`
		INSERT INTO parts (partnumber, manufacturer, description, label, package, value, tolerance)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), p.PartNumber, p.Manufacturer, p.Description, p.Label, p.Package, p.Value, p.Tolerance)
	if err != nil {
		return fmt.Errorf("create part %s: %w", p.PartNumber, db.classify(err))
	}
	return nil
}

// UpdatePart rewrites every attribute of an existing part.
func (db *DB) UpdatePart(ctx context.Context, p *models.Part) error {
	if err := store.ValidatePart(p); err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	res, err := db.conn.ExecContext(ctx, db.q(`
		UPDATE parts SET
			manufacturer = ?,
			description = ?,
			label = ?,
			package = ?,
			value = ?,
			tolerance = ?
		WHERE partnumber = ?
	`), p.Manufacturer, p.Description, p.Label, p.Package, p.Value, p.Tolerance, p.PartNumber)
	if err != nil {
		return fmt.Errorf("update part %s: %w", p.PartNumber, db.classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update part %s: %w", p.PartNumber, store.ErrNotFound)
	}
	return nil
}

// Manufacturer returns the manufacturer of a part.
func (db *DB) Manufacturer(ctx context.Context, pn string) (string, error) {
	var mfg sql.NullString
	err := db.conn.QueryRowContext(ctx, db.q("SELECT manufacturer FROM parts WHERE partnumber = ?"), pn).Scan(&mfg)
	if err != nil {
		return "", fmt.Errorf("get manufacturer %s: %w", pn, db.classify(err))
	}
	return mfg.String, nil
}
