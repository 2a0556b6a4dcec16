// Package exchange moves inventory data in and out of a store: YAML
// catalogs of parts and stock, and BOM exports of a single project.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

// Catalog is the YAML document of a whole inventory.
type Catalog struct {
	Parts []models.Part `yaml:"parts"`
	Stock []StockEntry  `yaml:"stock,omitempty"`
}

// StockEntry is the stock of one part: its stored counters and the
// quantity held at each location.
type StockEntry struct {
	PartNumber        string             `yaml:"part_number"`
	LowStockThreshold int64              `yaml:"low_stock_threshold,omitempty"`
	OnOrder           int64              `yaml:"on_order,omitempty"`
	InProd            int64              `yaml:"in_prod,omitempty"`
	Locations         []LocationQuantity `yaml:"locations,omitempty"`
}

// LocationQuantity is a quantity held at a named location.
type LocationQuantity struct {
	Location string `yaml:"location"`
	Quantity int64  `yaml:"quantity"`
}

// ImportResult counts what an import changed.
type ImportResult struct {
	PartsCreated int
	PartsUpdated int
	StockAdded   int
	LevelsSet    int
}

// ReadCatalog decodes a catalog document.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &c, nil
}

// WriteCatalog encodes c as YAML.
func WriteCatalog(w io.Writer, c *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

// ExportCatalog reads every part, storage row and stock level from s.
func ExportCatalog(ctx context.Context, s store.Store) (*Catalog, error) {
	parts, err := s.ListParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("export parts: %w", err)
	}
	storage, err := s.ListStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("export storage: %w", err)
	}
	stock, err := s.ListStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("export stock: %w", err)
	}

	byPN := make(map[string]*StockEntry)
	entry := func(pn string) *StockEntry {
		e, ok := byPN[pn]
		if !ok {
			e = &StockEntry{PartNumber: pn}
			byPN[pn] = e
		}
		return e
	}
	for _, si := range stock {
		e := entry(si.PartNumber)
		e.LowStockThreshold = si.LowStockThreshold
		e.OnOrder = si.OnOrder
		e.InProd = si.InProd
	}
	for _, ps := range storage {
		e := entry(ps.PartNumber)
		e.Locations = append(e.Locations, LocationQuantity{Location: ps.Location, Quantity: ps.Quantity})
	}

	c := &Catalog{Parts: parts}
	for _, e := range byPN {
		sort.Slice(e.Locations, func(i, j int) bool { return e.Locations[i].Location < e.Locations[j].Location })
		c.Stock = append(c.Stock, *e)
	}
	sort.Slice(c.Stock, func(i, j int) bool { return c.Stock[i].PartNumber < c.Stock[j].PartNumber })
	return c, nil
}

// ImportCatalog writes c into s. Existing parts are updated in place.
// Location quantities are added to what is already stored, so importing
// the same catalog twice doubles its stock.
func ImportCatalog(ctx context.Context, s store.Store, c *Catalog) (ImportResult, error) {
	var res ImportResult

	for i := range c.Parts {
		p := c.Parts[i]
		err := s.CreatePart(ctx, &p)
		switch {
		case err == nil:
			res.PartsCreated++
		case errors.Is(err, store.ErrDuplicate):
			if err := s.UpdatePart(ctx, &p); err != nil {
				return res, fmt.Errorf("import part %s: %w", p.PartNumber, err)
			}
			res.PartsUpdated++
		default:
			return res, fmt.Errorf("import part %s: %w", p.PartNumber, err)
		}
	}

	for _, e := range c.Stock {
		for _, lq := range e.Locations {
			if lq.Quantity == 0 {
				continue
			}
			if err := s.AddStock(ctx, e.PartNumber, lq.Location, lq.Quantity); err != nil {
				return res, fmt.Errorf("import stock %s at %s: %w", e.PartNumber, lq.Location, err)
			}
			res.StockAdded++
		}
		levels := models.StockLevels{
			PartNumber:        e.PartNumber,
			LowStockThreshold: e.LowStockThreshold,
			OnOrder:           e.OnOrder,
			InProd:            e.InProd,
		}
		if err := s.SetStockLevels(ctx, levels); err != nil {
			return res, fmt.Errorf("import stock levels %s: %w", e.PartNumber, err)
		}
		res.LevelsSet++
	}
	return res, nil
}
