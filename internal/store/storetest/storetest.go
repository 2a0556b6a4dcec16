// Package storetest holds a behavioural suite that every store backend
// must pass.
package storetest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

// Factory returns a migrated, empty store. It should register cleanup on t.
type Factory func(t *testing.T) store.Store

// Run executes the full suite against the backend built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("PartRoundTrip", func(t *testing.T) { testPartRoundTrip(t, newStore(t)) })
	t.Run("PartValidation", func(t *testing.T) { testPartValidation(t, newStore(t)) })
	t.Run("UpdatePart", func(t *testing.T) { testUpdatePart(t, newStore(t)) })
	t.Run("StorageAndQuantity", func(t *testing.T) { testStorageAndQuantity(t, newStore(t)) })
	t.Run("Locations", func(t *testing.T) { testLocations(t, newStore(t)) })
	t.Run("Stock", func(t *testing.T) { testStock(t, newStore(t)) })
	t.Run("Projects", func(t *testing.T) { testProjects(t, newStore(t)) })
	t.Run("MigrateIdempotent", func(t *testing.T) { testMigrateIdempotent(t, newStore(t)) })
	t.Run("EmptyListsEncodeAsArrays", func(t *testing.T) { testEmptyListsEncodeAsArrays(t, newStore(t)) })
	t.Run("KeysAreTrimmed", func(t *testing.T) { testKeysAreTrimmed(t, newStore(t)) })
}

func seedPart(t *testing.T, s store.Store, pn string) models.Part {
	t.Helper()
	p := models.Part{
		PartNumber:   pn,
		Manufacturer: "Yageo",
		Description:  "thick film resistor",
		Label:        "10k",
		Package:      "0603",
		Value:        "10k",
		Tolerance:    "1%",
	}
	require.NoError(t, s.CreatePart(context.Background(), &p))
	return p
}

func testPartRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	want := seedPart(t, s, "RC0603FR-0710KL")

	got, err := s.GetPart(ctx, want.PartNumber)
	require.NoError(t, err)
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("GetPart() mismatch (-want +got):\n%s", diff)
	}

	seedPart(t, s, "A-FIRST")
	parts, err := s.ListParts(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	if parts[0].PartNumber != "A-FIRST" {
		t.Errorf("ListParts()[0] = %q, want ordered by part number", parts[0].PartNumber)
	}

	mfg, err := s.Manufacturer(ctx, want.PartNumber)
	require.NoError(t, err)
	if mfg != "Yageo" {
		t.Errorf("Manufacturer() = %q, want %q", mfg, "Yageo")
	}

	_, err = s.GetPart(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Manufacturer(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testPartValidation(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.ErrorIs(t, s.CreatePart(ctx, &models.Part{Manufacturer: "TI"}), store.ErrEmptyPartNumber)
	require.ErrorIs(t, s.UpdatePart(ctx, &models.Part{}), store.ErrEmptyPartNumber)

	p := seedPart(t, s, "LM358")
	require.ErrorIs(t, s.CreatePart(ctx, &p), store.ErrDuplicate)
}

func testUpdatePart(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := seedPart(t, s, "NE555")
	p.Manufacturer = "TI"
	p.Description = "timer"
	p.Tolerance = ""
	require.NoError(t, s.UpdatePart(ctx, &p))

	got, err := s.GetPart(ctx, "NE555")
	require.NoError(t, err)
	if diff := cmp.Diff(p, *got); diff != "" {
		t.Errorf("after UpdatePart mismatch (-want +got):\n%s", diff)
	}

	require.ErrorIs(t, s.UpdatePart(ctx, &models.Part{PartNumber: "ghost"}), store.ErrNotFound)
}

func testStorageAndQuantity(t *testing.T, s store.Store) {
	ctx := context.Background()
	seedPart(t, s, "C1")

	_, err := s.GetQuantity(ctx, "C1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.AddStock(ctx, "C1", "Drawer 1", 10))
	require.NoError(t, s.AddStock(ctx, "C1", "Drawer 1", 5))
	require.NoError(t, s.AddStock(ctx, "C1", "Bin A", 3))

	rows, err := s.ListPartStorage(ctx, "C1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	if rows[0].Location != "Bin A" || rows[0].Quantity != 3 {
		t.Errorf("ListPartStorage()[0] = %+v, want Bin A with 3", rows[0])
	}
	if rows[1].Location != "Drawer 1" || rows[1].Quantity != 15 {
		t.Errorf("ListPartStorage()[1] = %+v, want Drawer 1 with 15", rows[1])
	}

	p, err := s.GetPart(ctx, "C1")
	require.NoError(t, err)
	if p.TotalQty != 18 {
		t.Errorf("TotalQty = %d, want 18", p.TotalQty)
	}

	all, err := s.ListStorage(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	q, err := s.GetQuantity(ctx, "C1")
	require.NoError(t, err)
	require.NotNil(t, q.Quantity)

	before := *q.Quantity
	require.NoError(t, s.SetQuantity(ctx, models.PartQty{PartNumber: "C1"}))
	q, err = s.GetQuantity(ctx, "C1")
	require.NoError(t, err)
	if *q.Quantity != before {
		t.Errorf("SetQuantity(nil) changed quantity: got %d, want %d", *q.Quantity, before)
	}

	n := int64(42)
	require.NoError(t, s.SetQuantity(ctx, models.PartQty{PartNumber: "C1", Quantity: &n}))
	q, err = s.GetQuantity(ctx, "C1")
	require.NoError(t, err)
	if *q.Quantity != 42 {
		t.Errorf("GetQuantity() = %d, want 42", *q.Quantity)
	}

	require.ErrorIs(t, s.AddStock(ctx, "ghost", "Bin A", 1), store.ErrNotFound)
	require.ErrorIs(t, s.AddStock(ctx, "C1", "Bin A", 0), store.ErrInvalidQuantity)
	require.ErrorIs(t, s.AddStock(ctx, "C1", "", 1), store.ErrEmptyLocation)
	require.ErrorIs(t, s.SetQuantity(ctx, models.PartQty{PartNumber: "ghost", Quantity: &n}), store.ErrNotFound)
}

func testLocations(t *testing.T, s store.Store) {
	ctx := context.Background()
	loc, err := s.CreateLocation(ctx, "Shelf 2")
	require.NoError(t, err)
	if loc.ID == "" {
		t.Error("CreateLocation() returned empty id")
	}
	_, err = s.CreateLocation(ctx, "Shelf 1")
	require.NoError(t, err)

	_, err = s.CreateLocation(ctx, "Shelf 2")
	require.ErrorIs(t, err, store.ErrDuplicate)
	_, err = s.CreateLocation(ctx, "")
	require.ErrorIs(t, err, store.ErrEmptyLocation)

	locs, err := s.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locs, 2)
	if locs[0].Name != "Shelf 1" {
		t.Errorf("ListLocations()[0] = %q, want Shelf 1", locs[0].Name)
	}
}

func testStock(t *testing.T, s store.Store) {
	ctx := context.Background()
	seedPart(t, s, "R1")
	seedPart(t, s, "R2")

	stock, err := s.ListStock(ctx)
	require.NoError(t, err)
	require.Empty(t, stock, "unstocked parts must not be listed")

	require.NoError(t, s.AddStock(ctx, "R1", "Bin A", 100))
	require.NoError(t, s.SetStockLevels(ctx, models.StockLevels{
		PartNumber: "R1", LowStockThreshold: 50, OnOrder: 25, InProd: 60,
	}))

	stock, err = s.ListStock(ctx)
	require.NoError(t, err)
	require.Len(t, stock, 1)
	want := models.StockInfo{
		PartNumber:        "R1",
		LowStockThreshold: 50,
		OnHand:            100,
		OnOrder:           25,
		InProd:            60,
		TotalStock:        125,
		Available:         40,
		Balance:           -10,
	}
	if diff := cmp.Diff(want, stock[0]); diff != "" {
		t.Errorf("ListStock() mismatch (-want +got):\n%s", diff)
	}

	// Adding more stock keeps the stored levels.
	require.NoError(t, s.AddStock(ctx, "R1", "Bin B", 20))
	stock, err = s.ListStock(ctx)
	require.NoError(t, err)
	if stock[0].OnHand != 120 || stock[0].InProd != 60 {
		t.Errorf("after AddStock got %+v, want on hand 120 and in prod 60", stock[0])
	}

	require.NoError(t, s.SetStockLevels(ctx, models.StockLevels{PartNumber: "R2", OnOrder: 5}))
	stock, err = s.ListStock(ctx)
	require.NoError(t, err)
	require.Len(t, stock, 2)

	require.ErrorIs(t, s.SetStockLevels(ctx, models.StockLevels{PartNumber: "ghost"}), store.ErrNotFound)
	require.ErrorIs(t, s.SetStockLevels(ctx, models.StockLevels{PartNumber: "R1", InProd: -1}), store.ErrInvalidQuantity)
}

func testProjects(t *testing.T, s store.Store) {
	ctx := context.Background()
	seedPart(t, s, "R1")
	seedPart(t, s, "C1")
	seedPart(t, s, "U1")

	require.ErrorIs(t, s.CreateProject(ctx, ""), store.ErrEmptyProjectName)
	require.NoError(t, s.CreateProject(ctx, "preamp"))
	require.NoError(t, s.CreateProject(ctx, "amp"))
	require.ErrorIs(t, s.CreateProject(ctx, "amp"), store.ErrDuplicate)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	if projects[0].Name != "amp" || projects[1].Name != "preamp" {
		t.Errorf("ListProjects() = %v, want ordered by name", projects)
	}

	require.NoError(t, s.AddComponent(ctx, "amp", models.ProjectComponent{PartNumber: "R1", Designators: "R1, R2", Qty: 2}))
	require.ErrorIs(t, s.AddComponent(ctx, "amp", models.ProjectComponent{PartNumber: "C1", Qty: 0}), store.ErrInvalidQuantity)
	require.ErrorIs(t, s.AddComponent(ctx, "amp", models.ProjectComponent{PartNumber: "ghost", Qty: 1}), store.ErrNotFound)
	require.ErrorIs(t, s.AddComponent(ctx, "nope", models.ProjectComponent{PartNumber: "C1", Qty: 1}), store.ErrNotFound)
	require.ErrorIs(t, s.AddComponent(ctx, "amp", models.ProjectComponent{PartNumber: "R1", Qty: 1}), store.ErrDuplicate)

	proj, err := s.GetProject(ctx, "amp")
	require.NoError(t, err)
	require.Len(t, proj.Parts, 1)
	c := proj.Parts[0]
	if c.PartNumber != "R1" || c.Designators != "R1, R2" || c.Qty != 2 {
		t.Errorf("component = %+v, want R1 at R1, R2 x2", c)
	}
	if c.PartInfo.Manufacturer != "Yageo" || c.PartInfo.PartNumber != "R1" {
		t.Errorf("PartInfo = %+v, want joined part row", c.PartInfo)
	}

	missing, err := s.ListPartsNotInProject(ctx, "amp")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"C1", "U1"}, missing); diff != "" {
		t.Errorf("ListPartsNotInProject() mismatch (-want +got):\n%s", diff)
	}

	empty, err := s.GetProject(ctx, "preamp")
	require.NoError(t, err)
	require.Empty(t, empty.Parts)

	_, err = s.GetProject(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testMigrateIdempotent(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx))
	seedPart(t, s, "X1")
}

// testEmptyListsEncodeAsArrays checks that no list call hands back a nil
// slice, so JSON clients always see [] rather than null.
func testEmptyListsEncodeAsArrays(t *testing.T, s store.Store) {
	ctx := context.Background()
	encode := func(v any, err error) string {
		t.Helper()
		require.NoError(t, err)
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return string(b)
	}

	require.Equal(t, "[]", encode(s.ListParts(ctx)))
	require.Equal(t, "[]", encode(s.ListStorage(ctx)))
	require.Equal(t, "[]", encode(s.ListPartStorage(ctx, "R1")))
	require.Equal(t, "[]", encode(s.ListLocations(ctx)))
	require.Equal(t, "[]", encode(s.ListStock(ctx)))
	require.Equal(t, "[]", encode(s.ListProjects(ctx)))
	require.Equal(t, "[]", encode(s.ListPartsNotInProject(ctx, "none")))

	require.NoError(t, s.CreateProject(ctx, "Empty"))
	p, err := s.GetProject(ctx, "Empty")
	require.NoError(t, err)
	require.Equal(t, "[]", encode(p.Parts, nil))
	require.Equal(t, `[{"name":"Empty","parts":[]}]`, encode(s.ListProjects(ctx)))
}

func testKeysAreTrimmed(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.CreatePart(ctx, &models.Part{PartNumber: "R1"}))
	require.ErrorIs(t, s.CreatePart(ctx, &models.Part{PartNumber: " R1 "}), store.ErrDuplicate)
	parts, err := s.ListParts(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 1)

	require.NoError(t, s.UpdatePart(ctx, &models.Part{PartNumber: "R1\t", Manufacturer: "Vishay"}))
	mfg, err := s.Manufacturer(ctx, "R1")
	require.NoError(t, err)
	require.Equal(t, "Vishay", mfg)

	_, err = s.CreateLocation(ctx, "   ")
	require.ErrorIs(t, err, store.ErrEmptyLocation)
	loc, err := s.CreateLocation(ctx, " Drawer A ")
	require.NoError(t, err)
	require.Equal(t, "Drawer A", loc.Name)
	_, err = s.CreateLocation(ctx, "Drawer A")
	require.ErrorIs(t, err, store.ErrDuplicate)

	require.NoError(t, s.AddStock(ctx, " R1", "Drawer A  ", 3))
	storage, err := s.ListPartStorage(ctx, "R1")
	require.NoError(t, err)
	require.Len(t, storage, 1)
	require.Equal(t, "Drawer A", storage[0].Location)
	require.Equal(t, int64(3), storage[0].Quantity)

	require.NoError(t, s.CreateProject(ctx, " P "))
	require.ErrorIs(t, s.CreateProject(ctx, "P"), store.ErrDuplicate)
	require.NoError(t, s.AddComponent(ctx, "P", models.ProjectComponent{PartNumber: " R1 ", Qty: 1}))
	p, err := s.GetProject(ctx, "P")
	require.NoError(t, err)
	require.Len(t, p.Parts, 1)
	require.Equal(t, "R1", p.Parts[0].PartNumber)
}
