// Package memory provides an in-process store backend. It keeps every
// table in maps guarded by a single lock and is used for demos and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

// Compile-time verification that Store implements all interfaces.
var (
	_ store.Store        = (*Store)(nil)
	_ store.PartStore    = (*Store)(nil)
	_ store.StorageStore = (*Store)(nil)
	_ store.StockStore   = (*Store)(nil)
	_ store.ProjectStore = (*Store)(nil)
)

type storageKey struct {
	pn    string
	locID string
}

// Store is a map-backed store.
type Store struct {
	mu        sync.RWMutex
	parts     map[string]models.Part
	locations map[string]models.StorageLocation // by id
	storage   map[storageKey]int64
	stock     map[string]models.StockLevels
	projects  map[string][]models.ProjectComponent
	newLocID  func() string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		parts:     make(map[string]models.Part),
		locations: make(map[string]models.StorageLocation),
		storage:   make(map[storageKey]int64),
		stock:     make(map[string]models.StockLevels),
		projects:  make(map[string][]models.ProjectComponent),
		newLocID:  uuid.NewString,
	}
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Migrate is a no-op; the maps need no schema.
func (s *Store) Migrate(context.Context) error { return nil }

// totalQty must be called with the lock held.
func (s *Store) totalQty(pn string) int64 {
	var total int64
	for k, q := range s.storage {
		if k.pn == pn {
			total += q
		}
	}
	return total
}

func (s *Store) withTotal(p models.Part) models.Part {
	p.TotalQty = s.totalQty(p.PartNumber)
	return p
}

// ListParts returns every part ordered by part number.
func (s *Store) ListParts(_ context.Context) ([]models.Part, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Part, 0, len(s.parts))
	for _, p := range s.parts {
		out = append(out, s.withTotal(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out, nil
}

// GetPart retrieves a part by part number.
func (s *Store) GetPart(_ context.Context, pn string) (*models.Part, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.parts[pn]
	if !ok {
		return nil, fmt.Errorf("get part %s: %w", pn, store.ErrNotFound)
	}
	p = s.withTotal(p)
	return &p, nil
}

// CreatePart inserts a new part.
func (s *Store) CreatePart(_ context.Context, p *models.Part) error {
	if err := store.ValidatePart(p); err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.parts[p.PartNumber]; ok {
		return fmt.Errorf("create part %s: %w", p.PartNumber, store.ErrDuplicate)
	}
	cp := *p
	cp.TotalQty = 0
	s.parts[p.PartNumber] = cp
	return nil
}

// UpdatePart rewrites every attribute of an existing part.
func (s *Store) UpdatePart(_ context.Context, p *models.Part) error {
	if err := store.ValidatePart(p); err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.parts[p.PartNumber]; !ok {
		return fmt.Errorf("update part %s: %w", p.PartNumber, store.ErrNotFound)
	}
	cp := *p
	cp.TotalQty = 0
	s.parts[p.PartNumber] = cp
	return nil
}

// Manufacturer returns the manufacturer of a part.
func (s *Store) Manufacturer(_ context.Context, pn string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.parts[pn]
	if !ok {
		return "", fmt.Errorf("get manufacturer %s: %w", pn, store.ErrNotFound)
	}
	return p.Manufacturer, nil
}

// storageRows must be called with the lock held.
func (s *Store) storageRows(match func(pn string) bool) []models.PartStorage {
	out := []models.PartStorage{}
	for k, q := range s.storage {
		if !match(k.pn) {
			continue
		}
		out = append(out, models.PartStorage{
			PartNumber: k.pn,
			Location:   s.locations[k.locID].Name,
			LocationID: k.locID,
			Quantity:   q,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PartNumber != out[j].PartNumber {
			return out[i].PartNumber < out[j].PartNumber
		}
		return out[i].Location < out[j].Location
	})
	return out
}

// ListPartStorage returns the storage rows of a single part.
func (s *Store) ListPartStorage(_ context.Context, pn string) ([]models.PartStorage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storageRows(func(p string) bool { return p == pn }), nil
}

// ListStorage returns every storage row.
func (s *Store) ListStorage(_ context.Context) ([]models.PartStorage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storageRows(func(string) bool { return true }), nil
}

// ListLocations returns every storage location ordered by name.
func (s *Store) ListLocations(_ context.Context) ([]models.StorageLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.StorageLocation, 0, len(s.locations))
	for _, l := range s.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// locationByName must be called with the lock held.
func (s *Store) locationByName(name string) (models.StorageLocation, bool) {
	for _, l := range s.locations {
		if l.Name == name {
			return l, true
		}
	}
	return models.StorageLocation{}, false
}

// CreateLocation inserts a new storage location with a generated id.
func (s *Store) CreateLocation(_ context.Context, name string) (*models.StorageLocation, error) {
	name, err := store.ValidateLocation(name)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locationByName(name); ok {
		return nil, fmt.Errorf("create location %s: %w", name, store.ErrDuplicate)
	}
	loc := models.StorageLocation{ID: s.newLocID(), Name: name}
	s.locations[loc.ID] = loc
	return &loc, nil
}

// firstStorageKey must be called with the lock held. It mirrors the SQL
// backends, which order by location id.
func (s *Store) firstStorageKey(pn string) (storageKey, bool) {
	var (
		first storageKey
		found bool
	)
	for k := range s.storage {
		if k.pn != pn {
			continue
		}
		if !found || k.locID < first.locID {
			first, found = k, true
		}
	}
	return first, found
}

// GetQuantity returns the quantity of the part's first storage row.
func (s *Store) GetQuantity(_ context.Context, pn string) (*models.PartQty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.firstStorageKey(pn)
	if !ok {
		return nil, fmt.Errorf("get quantity %s: %w", pn, store.ErrNotFound)
	}
	q := s.storage[k]
	return &models.PartQty{PartNumber: pn, Quantity: &q}, nil
}

// SetQuantity overwrites the stored quantity of a part.
func (s *Store) SetQuantity(_ context.Context, q models.PartQty) error {
	if q.PartNumber == "" {
		return fmt.Errorf("set quantity: %w", store.ErrEmptyPartNumber)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.firstStorageKey(q.PartNumber)
	if !ok {
		return fmt.Errorf("set quantity %s: %w", q.PartNumber, store.ErrNotFound)
	}
	if q.Quantity == nil {
		return nil
	}
	if *q.Quantity < 0 {
		return fmt.Errorf("set quantity %s: %w", q.PartNumber, store.ErrInvalidQuantity)
	}
	for key := range s.storage {
		if key.pn == k.pn {
			s.storage[key] = *q.Quantity
		}
	}
	return nil
}

// AddStock adds qty of pn at the named location.
func (s *Store) AddStock(_ context.Context, pn, location string, qty int64) error {
	pn, location, err := store.ValidateStockAdd(pn, location, qty)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.parts[pn]; !ok {
		return fmt.Errorf("add stock %s: part %w", pn, store.ErrNotFound)
	}
	loc, ok := s.locationByName(location)
	if !ok {
		loc = models.StorageLocation{ID: s.newLocID(), Name: location}
		s.locations[loc.ID] = loc
	}
	s.storage[storageKey{pn: pn, locID: loc.ID}] += qty
	if _, ok := s.stock[pn]; !ok {
		s.stock[pn] = models.StockLevels{PartNumber: pn}
	}
	return nil
}

// ListStock returns every stocked part with its derived counters.
func (s *Store) ListStock(_ context.Context) ([]models.StockInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.StockInfo, 0, len(s.stock))
	for pn, l := range s.stock {
		out = append(out, models.NewStockInfo(l, s.totalQty(pn)))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out, nil
}

// SetStockLevels writes the stored counters of a part, stocking it if needed.
func (s *Store) SetStockLevels(_ context.Context, l models.StockLevels) error {
	if err := store.ValidateStockLevels(&l); err != nil {
		return fmt.Errorf("set stock levels: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.parts[l.PartNumber]; !ok {
		return fmt.Errorf("set stock levels %s: part %w", l.PartNumber, store.ErrNotFound)
	}
	s.stock[l.PartNumber] = l
	return nil
}

// ListProjects returns every project name in alphabetical order.
func (s *Store) ListProjects(_ context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for name := range s.projects {
		out = append(out, models.Project{Name: name, Parts: []models.ProjectComponent{}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateProject inserts an empty project.
func (s *Store) CreateProject(_ context.Context, name string) error {
	name, err := store.ValidateProjectName(name)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[name]; ok {
		return fmt.Errorf("create project %s: %w", name, store.ErrDuplicate)
	}
	s.projects[name] = nil
	return nil
}

// GetProject returns a project with its BOM lines and joined part rows.
func (s *Store) GetProject(_ context.Context, name string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comps, ok := s.projects[name]
	if !ok {
		return nil, fmt.Errorf("get project %s: %w", name, store.ErrNotFound)
	}
	proj := &models.Project{Name: name, Parts: make([]models.ProjectComponent, 0, len(comps))}
	for _, c := range comps {
		c.PartInfo = s.withTotal(s.parts[c.PartNumber])
		proj.Parts = append(proj.Parts, c)
	}
	sort.Slice(proj.Parts, func(i, j int) bool { return proj.Parts[i].PartNumber < proj.Parts[j].PartNumber })
	return proj, nil
}

// ListPartsNotInProject returns the part numbers that are not yet on the BOM.
func (s *Store) ListPartsNotInProject(_ context.Context, name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	used := make(map[string]bool)
	for _, c := range s.projects[name] {
		used[c.PartNumber] = true
	}
	out := []string{}
	for pn := range s.parts {
		if !used[pn] {
			out = append(out, pn)
		}
	}
	sort.Strings(out)
	return out, nil
}

// AddComponent appends a BOM line to a project.
func (s *Store) AddComponent(_ context.Context, project string, c models.ProjectComponent) error {
	if err := store.ValidateComponent(&c); err != nil {
		return fmt.Errorf("add component: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	comps, ok := s.projects[project]
	if !ok {
		return fmt.Errorf("add component to %s: project %w", project, store.ErrNotFound)
	}
	if _, ok := s.parts[c.PartNumber]; !ok {
		return fmt.Errorf("add component to %s: part %s %w", project, c.PartNumber, store.ErrNotFound)
	}
	if (&models.Project{Parts: comps}).HasPart(c.PartNumber) {
		return fmt.Errorf("add component %s to %s: %w", c.PartNumber, project, store.ErrDuplicate)
	}
	c.PartInfo = models.Part{}
	s.projects[project] = append(comps, c)
	return nil
}
