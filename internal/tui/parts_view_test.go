package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

func newPartsView(t *testing.T) *PartsView {
	t.Helper()
	v := NewPartsView(seededStore(t))
	v.now = func() time.Time { return fixedNow }
	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return v
}

func TestPartsRefresh(t *testing.T) {
	v := newPartsView(t)

	var got []string
	for _, p := range v.Parts() {
		got = append(got, p.PartNumber)
	}
	if diff := cmp.Diff([]string{"C1", "R1", "U1"}, got); diff != "" {
		t.Errorf("part numbers mismatch (-want +got):\n%s", diff)
	}
	if v.Selected() != -1 {
		t.Errorf("Expected no selection after first refresh, got %d", v.Selected())
	}
	if !v.Refreshed().Equal(fixedNow) {
		t.Errorf("Expected refreshed %v, got %v", fixedNow, v.Refreshed())
	}
	if v.Parts()[1].TotalQty != 100 {
		t.Errorf("Expected R1 total 100, got %d", v.Parts()[1].TotalQty)
	}
}

func TestPartsSelectionMovement(t *testing.T) {
	v := newPartsView(t)

	press(t, v.HandleKey, keyUp)
	if v.Selected() != 0 {
		t.Fatalf("Expected up with no selection to select row 0, got %d", v.Selected())
	}
	press(t, v.HandleKey, keyUp)
	if v.Selected() != 0 {
		t.Errorf("Expected selection clamped at 0, got %d", v.Selected())
	}
	for i := 0; i < 5; i++ {
		press(t, v.HandleKey, keyDown)
	}
	if v.Selected() != 2 {
		t.Errorf("Expected selection clamped at 2, got %d", v.Selected())
	}
	if v.detail == nil || v.detail.PartNumber != "U1" {
		t.Errorf("Expected selected part text loaded for U1, got %+v", v.detail)
	}
}

func TestPartsNewPartFlow(t *testing.T) {
	v := newPartsView(t)

	press(t, v.HandleKey, runeKey("n"))
	if v.SubState() != PartsNewPart {
		t.Fatalf("Expected NewPart, got %s", v.SubState())
	}
	if _, field := v.Form(); field != models.FieldPartNumber {
		t.Errorf("Expected form to start on part number, got %s", field)
	}

	typeText(t, v.HandleKey, "Q1")
	press(t, v.HandleKey, keyTab)
	typeText(t, v.HandleKey, "Nexperia")
	press(t, v.HandleKey, keyTab)
	typeText(t, v.HandleKey, "SOT-23x")
	press(t, v.HandleKey, keyBackspace)

	form, field := v.Form()
	if field != models.FieldPackage {
		t.Errorf("Expected field Package, got %s", field)
	}
	if form.Package != "SOT-23" {
		t.Errorf("Expected package SOT-23 after backspace, got %q", form.Package)
	}

	status := press(t, v.HandleKey, keyEnter)
	if status == "" {
		t.Error("Expected a status message after create")
	}
	if v.SubState() != PartsMain {
		t.Fatalf("Expected Main after create, got %s", v.SubState())
	}
	if len(v.Parts()) != 4 {
		t.Fatalf("Expected 4 parts after create, got %d", len(v.Parts()))
	}
	if v.Parts()[v.Selected()].PartNumber != "Q1" {
		t.Errorf("Expected new part selected, got %s", v.Parts()[v.Selected()].PartNumber)
	}
	if v.Parts()[v.Selected()].Manufacturer != "Nexperia" {
		t.Errorf("Expected manufacturer Nexperia, got %q", v.Parts()[v.Selected()].Manufacturer)
	}
}

func TestPartsNewPartEmptyNumberKeepsForm(t *testing.T) {
	v := newPartsView(t)

	press(t, v.HandleKey, runeKey("n"))
	typeText(t, v.HandleKey, "   ")
	_, err := v.HandleKey(context.Background(), keyEnter)
	if !errors.Is(err, store.ErrEmptyPartNumber) {
		t.Fatalf("Expected ErrEmptyPartNumber, got %v", err)
	}
	if v.SubState() != PartsNewPart {
		t.Errorf("Expected form to stay open, got %s", v.SubState())
	}
}

func TestPartsNewPartDuplicate(t *testing.T) {
	v := newPartsView(t)

	press(t, v.HandleKey, runeKey("n"))
	typeText(t, v.HandleKey, "R1")
	_, err := v.HandleKey(context.Background(), keyEnter)
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
	if v.SubState() != PartsNewPart {
		t.Errorf("Expected form to stay open, got %s", v.SubState())
	}
}

func TestPartsEscCancelsForm(t *testing.T) {
	v := newPartsView(t)

	press(t, v.HandleKey, runeKey("n"))
	typeText(t, v.HandleKey, "X9")
	press(t, v.HandleKey, keyEsc)
	if v.SubState() != PartsMain {
		t.Fatalf("Expected Main after esc, got %s", v.SubState())
	}
	if len(v.Parts()) != 3 {
		t.Errorf("Expected nothing created, got %d parts", len(v.Parts()))
	}
}

func TestPartsEditFlow(t *testing.T) {
	v := newPartsView(t)

	press(t, v.HandleKey, runeKey("e"))
	if v.SubState() != PartsMain {
		t.Fatalf("Expected edit without selection to be ignored, got %s", v.SubState())
	}

	press(t, v.HandleKey, keyDown) // C1
	press(t, v.HandleKey, keyDown) // R1
	press(t, v.HandleKey, runeKey("e"))
	if v.SubState() != PartsEditPart {
		t.Fatalf("Expected EditPart, got %s", v.SubState())
	}
	form, field := v.Form()
	if field != models.FieldManufacturer {
		t.Errorf("Expected edit to start on manufacturer, got %s", field)
	}
	if form.PartNumber != "R1" || form.Manufacturer != "Yageo" {
		t.Errorf("Expected form filled from R1, got %+v", form)
	}

	// Cycle back around to the manufacturer; the part number is never reached.
	for i := 0; i < 6; i++ {
		press(t, v.HandleKey, keyTab)
	}
	if _, field := v.Form(); field != models.FieldManufacturer {
		t.Errorf("Expected field cycle to wrap to manufacturer, got %s", field)
	}
	for i := 0; i < len("Yageo"); i++ {
		press(t, v.HandleKey, keyBackspace)
	}
	typeText(t, v.HandleKey, "Vishay")
	press(t, v.HandleKey, keyEnter)

	if v.SubState() != PartsMain {
		t.Fatalf("Expected Main after update, got %s", v.SubState())
	}
	got := v.Parts()[v.Selected()]
	if got.PartNumber != "R1" || got.Manufacturer != "Vishay" {
		t.Errorf("Expected R1 updated to Vishay, got %+v", got)
	}
	if got.Description != "10k resistor" {
		t.Errorf("Expected untouched description kept, got %q", got.Description)
	}
}

func TestPartsDetailsToggleAndScroll(t *testing.T) {
	v := newPartsView(t)

	press(t, v.HandleKey, runeKey("d"))
	if v.Details() {
		t.Fatal("Expected details ignored without a selection")
	}

	press(t, v.HandleKey, keyDown)
	press(t, v.HandleKey, keyDown) // R1
	press(t, v.HandleKey, runeKey("d"))
	if !v.Details() {
		t.Fatal("Expected details shown")
	}
	if len(v.detailStorage) != 1 || v.detailStorage[0].Location != "Drawer A" {
		t.Errorf("Expected R1 storage loaded, got %+v", v.detailStorage)
	}

	press(t, v.HandleKey, keyUp)
	if v.DetailScroll() != 0 {
		t.Errorf("Expected scroll to stay at 0, got %d", v.DetailScroll())
	}
	if v.Selected() != 1 {
		t.Errorf("Expected selection unchanged while details are shown, got %d", v.Selected())
	}

	limit := v.maxDetailScroll()
	for i := 0; i < limit+5; i++ {
		press(t, v.HandleKey, keyDown)
	}
	if v.DetailScroll() != limit {
		t.Errorf("Expected scroll clamped at %d, got %d", limit, v.DetailScroll())
	}

	press(t, v.HandleKey, runeKey("d"))
	if v.Details() {
		t.Error("Expected second d to hide details")
	}
	if v.DetailScroll() != 0 {
		t.Errorf("Expected scroll reset on toggle, got %d", v.DetailScroll())
	}
}

func TestPartsBindingsFollowSubState(t *testing.T) {
	v := newPartsView(t)

	if got := len(v.Bindings()); got == 0 {
		t.Fatal("Expected main bindings")
	}
	press(t, v.HandleKey, runeKey("n"))
	b := v.Bindings()
	if len(b) != 3 {
		t.Errorf("Expected 3 form bindings, got %d", len(b))
	}
	if !v.Typing() {
		t.Error("Expected form to consume keys as text")
	}
}
