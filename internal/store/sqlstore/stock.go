package sqlstore

import (
	"context"
	"fmt"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

// ListStock returns every stocked part with its derived counters.
func (db *DB) ListStock(ctx context.Context) ([]models.StockInfo, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT s.partnumber, s.low_stock_threshold, s.on_order, s.in_prod, v.total_qty
		FROM stock s
		JOIN big_part_view v ON v.partnumber = s.partnumber
		ORDER BY s.partnumber
	`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	out := []models.StockInfo{}
	for rows.Next() {
		var (
			l      models.StockLevels
			onHand int64
		)
		if err := rows.Scan(&l.PartNumber, &l.LowStockThreshold, &l.OnOrder, &l.InProd, &onHand); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, models.NewStockInfo(l, onHand))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock: %w", err)
	}
	return out, nil
}

// SetStockLevels writes the stored counters of a part, stocking it if needed.
func (db *DB) SetStockLevels(ctx context.Context, l models.StockLevels) error {
	if err := store.ValidateStockLevels(&l); err != nil {
		return fmt.Errorf("set stock levels: %w", err)
	}
	ok, err := db.partExists(ctx, l.PartNumber)
	if err != nil {
		return fmt.Errorf("set stock levels %s: %w", l.PartNumber, err)
	}
	if !ok {
		return fmt.Errorf("set stock levels %s: part %w", l.PartNumber, store.ErrNotFound)
	}
	_, err = db.conn.ExecContext(ctx, db.q(`
		INSERT INTO stock (partnumber, low_stock_threshold, on_order, in_prod) VALUES (?, ?, ?, ?)
		ON CONFLICT (partnumber) DO UPDATE SET
			low_stock_threshold = excluded.low_stock_threshold,
			on_order = excluded.on_order,
			in_prod = excluded.in_prod
	`), l.PartNumber, l.LowStockThreshold, l.OnOrder, l.InProd)
	if err != nil {
		return fmt.Errorf("set stock levels %s: %w", l.PartNumber, err)
	}
	return nil
}
