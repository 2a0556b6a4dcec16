package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

const selectPartStorage = `
	SELECT ps.partnumber, sl.storage_loc_name, ps.storage_loc_id, ps.quantity
	FROM part_storage ps
	JOIN storage_locs sl ON sl.storage_loc_id = ps.storage_loc_id`

// ListPartStorage returns the storage rows of a single part.
func (db *DB) ListPartStorage(ctx context.Context, pn string) ([]models.PartStorage, error) {
	rows, err := db.conn.QueryContext(ctx, db.q(selectPartStorage+" WHERE ps.partnumber = ? ORDER BY sl.storage_loc_name"), pn)
	if err != nil {
		return nil, fmt.Errorf("list storage for %s: %w", pn, err)
	}
	return scanStorageRows(rows)
}

// ListStorage returns every storage row joined with its location name.
func (db *DB) ListStorage(ctx context.Context) ([]models.PartStorage, error) {
	rows, err := db.conn.QueryContext(ctx, selectPartStorage+" ORDER BY ps.partnumber, sl.storage_loc_name")
	if err != nil {
		return nil, fmt.Errorf("list storage: %w", err)
	}
	return scanStorageRows(rows)
}

func scanStorageRows(rows *sql.Rows) ([]models.PartStorage, error) {
	defer rows.Close()

	out := []models.PartStorage{}
	for rows.Next() {
		var s models.PartStorage
		if err := rows.Scan(&s.PartNumber, &s.Location, &s.LocationID, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan storage: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate storage: %w", err)
	}
	return out, nil
}

// ListLocations returns every storage location ordered by name.
func (db *DB) ListLocations(ctx context.Context) ([]models.StorageLocation, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT storage_loc_id, storage_loc_name FROM storage_locs ORDER BY storage_loc_name")
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	out := []models.StorageLocation{}
	for rows.Next() {
		var l models.StorageLocation
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return out, nil
}

// CreateLocation inserts a new storage location with a generated id.
func (db *DB) CreateLocation(ctx context.Context, name string) (*models.StorageLocation, error) {
	name, err := store.ValidateLocation(name)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	loc := &models.StorageLocation{ID: uuid.NewString(), Name: name}
	_, err = db.conn.ExecContext(ctx, db.q("INSERT INTO storage_locs (storage_loc_id, storage_loc_name) VALUES (?, ?)"), loc.ID, loc.Name)
	if err != nil {
		return nil, fmt.Errorf("create location %s: %w", name, db.classify(err))
	}
	return loc, nil
}

// GetQuantity returns the quantity of the part's first storage row.
func (db *DB) GetQuantity(ctx context.Context, pn string) (*models.PartQty, error) {
	var qty int64
	err := db.conn.QueryRowContext(ctx, db.q(`
		SELECT quantity FROM part_storage WHERE partnumber = ?
		ORDER BY storage_loc_id LIMIT 1
	`), pn).Scan(&qty)
	if err != nil {
		return nil, fmt.Errorf("get quantity %s: %w", pn, db.classify(err))
	}
	return &models.PartQty{PartNumber: pn, Quantity: &qty}, nil
}

// SetQuantity overwrites the stored quantity of a part.
func (db *DB) SetQuantity(ctx context.Context, q models.PartQty) error {
	if q.PartNumber == "" {
		return fmt.Errorf("set quantity: %w", store.ErrEmptyPartNumber)
	}
	if q.Quantity == nil {
		// Nothing to write; still report unknown parts.
		if _, err := db.GetQuantity(ctx, q.PartNumber); err != nil {
			return fmt.Errorf("set quantity: %w", err)
		}
		return nil
	}
	if *q.Quantity < 0 {
		return fmt.Errorf("set quantity %s: %w", q.PartNumber, store.ErrInvalidQuantity)
	}
	res, err := db.conn.ExecContext(ctx, db.q("UPDATE part_storage SET quantity = ? WHERE partnumber = ?"), *q.Quantity, q.PartNumber)
	if err != nil {
		return fmt.Errorf("set quantity %s: %w", q.PartNumber, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("set quantity %s: %w", q.PartNumber, store.ErrNotFound)
	}
	return nil
}

// AddStock adds qty of pn at the named location.
func (db *DB) AddStock(ctx context.Context, pn, location string, qty int64) error {
	pn, location, err := store.ValidateStockAdd(pn, location, qty)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	ok, err := db.partExists(ctx, pn)
	if err != nil {
		return fmt.Errorf("add stock %s: %w", pn, err)
	}
	if !ok {
		return fmt.Errorf("add stock %s: part %w", pn, store.ErrNotFound)
	}

	return db.Transaction(ctx, func(tx *sql.Tx) error {
		var locID string
		err := tx.QueryRowContext(ctx, db.q("SELECT storage_loc_id FROM storage_locs WHERE storage_loc_name = ?"), location).Scan(&locID)
		if errors.Is(err, sql.ErrNoRows) {
			locID = uuid.NewString()
			if _, err := tx.ExecContext(ctx, db.q("INSERT INTO storage_locs (storage_loc_id, storage_loc_name) VALUES (?, ?)"), locID, location); err != nil {
				return fmt.Errorf("create location %s: %w", location, db.classify(err))
			}
		} else if err != nil {
			return fmt.Errorf("find location %s: %w", location, err)
		}

		_, err = tx.ExecContext(ctx, db.q(`
			INSERT INTO part_storage (partnumber, storage_loc_id, quantity) VALUES (?, ?, ?)
			ON CONFLICT (partnumber, storage_loc_id) DO UPDATE SET quantity = part_storage.quantity + excluded.quantity
		`), pn, locID, qty)
		if err != nil {
			return fmt.Errorf("add stock %s: %w", pn, err)
		}

		_, err = tx.ExecContext(ctx, db.q("INSERT INTO stock (partnumber) VALUES (?) ON CONFLICT (partnumber) DO NOTHING"), pn)
		if err != nil {
			return fmt.Errorf("mark %s stocked: %w", pn, err)
		}
		return nil
	})
}
