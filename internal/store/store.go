// Package store defines the persistence boundary for ShikaBOM.
// Backends live in subpackages: postgres, sqlite (both built on sqlstore)
// and memory.
package store

import (
	"context"
	"io"

	"github.com/ShayCichocki/shikabom/pkg/models"
)

// PartStore handles part-related persistence operations.
type PartStore interface {
	// ListParts returns every part with its total quantity, ordered by part number.
	ListParts(ctx context.Context) ([]models.Part, error)
	GetPart(ctx context.Context, pn string) (*models.Part, error)
	CreatePart(ctx context.Context, p *models.Part) error
	// UpdatePart rewrites every attribute of an existing part except its key.
	UpdatePart(ctx context.Context, p *models.Part) error
	Manufacturer(ctx context.Context, pn string) (string, error)
}

// StorageStore handles storage locations and per-location quantities.
type StorageStore interface {
	ListPartStorage(ctx context.Context, pn string) ([]models.PartStorage, error)
	ListStorage(ctx context.Context) ([]models.PartStorage, error)
	ListLocations(ctx context.Context) ([]models.StorageLocation, error)
	CreateLocation(ctx context.Context, name string) (*models.StorageLocation, error)
	// GetQuantity returns the quantity held in the part's first storage row.
	GetQuantity(ctx context.Context, pn string) (*models.PartQty, error)
	// SetQuantity overwrites the part's storage quantity. A nil quantity
	// leaves the stored value untouched.
	SetQuantity(ctx context.Context, q models.PartQty) error
	// AddStock adds qty of pn at the named location, creating the location
	// when it does not exist yet, and marks the part as stocked.
	AddStock(ctx context.Context, pn, location string, qty int64) error
}

// StockStore handles the stock counters of stocked parts.
type StockStore interface {
	ListStock(ctx context.Context) ([]models.StockInfo, error)
	SetStockLevels(ctx context.Context, l models.StockLevels) error
}

// ProjectStore handles projects and their bills of materials.
type ProjectStore interface {
	// ListProjects returns every project ordered by name, without components.
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, name string) error
	GetProject(ctx context.Context, name string) (*models.Project, error)
	ListPartsNotInProject(ctx context.Context, name string) ([]string, error)
	AddComponent(ctx context.Context, project string, c models.ProjectComponent) error
}

// Migrator handles database schema migrations.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate(ctx context.Context) error
}

// Store composes every persistence concern behind one handle.
type Store interface {
	io.Closer
	Migrator
	PartStore
	StorageStore
	StockStore
	ProjectStore
}
