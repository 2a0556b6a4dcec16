package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/shikabom/internal/store/memory"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab       = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keyUp        = tea.KeyMsg{Type: tea.KeyUp}
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyCtrlC     = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// typeText feeds s one rune at a time.
func typeText(t *testing.T, handle func(context.Context, tea.KeyMsg) (string, error), s string) {
	t.Helper()
	for _, r := range s {
		if _, err := handle(context.Background(), runeKey(string(r))); err != nil {
			t.Fatalf("typing %q: %v", r, err)
		}
	}
}

func press(t *testing.T, handle func(context.Context, tea.KeyMsg) (string, error), msg tea.KeyMsg) string {
	t.Helper()
	status, err := handle(context.Background(), msg)
	if err != nil {
		t.Fatalf("key %q: %v", msg.String(), err)
	}
	return status
}

// seededStore returns a memory store with three parts, two of them stocked,
// and one project.
func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	t.Cleanup(func() { _ = s.Close() })

	parts := []models.Part{
		{PartNumber: "C1", Manufacturer: "Murata", Description: "100nF cap", Package: "0402", Value: "100nF", Tolerance: "10%"},
		{PartNumber: "R1", Manufacturer: "Yageo", Description: "10k resistor", Package: "0603", Value: "10k", Tolerance: "1%"},
		{PartNumber: "U1", Manufacturer: "TI", Description: "LDO", Package: "SOT-23-5", Label: "3V3"},
	}
	for i := range parts {
		if err := s.CreatePart(ctx, &parts[i]); err != nil {
			t.Fatalf("CreatePart(%s): %v", parts[i].PartNumber, err)
		}
	}
	if err := s.AddStock(ctx, "R1", "Drawer A", 100); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if err := s.AddStock(ctx, "C1", "Drawer B", 50); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if err := s.CreateProject(ctx, "Widget"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := s.AddComponent(ctx, "Widget", models.ProjectComponent{PartNumber: "R1", Designators: "R1,R2", Qty: 2}); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	return s
}
