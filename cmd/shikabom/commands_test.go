package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ShayCichocki/shikabom/internal/store/sqlite"
)

// run executes the root command against a sqlite file in a temp dir.
func run(t *testing.T, db string, args ...string) error {
	t.Helper()
	full := append([]string{"--driver", "sqlite", "--dsn", db}, args...)
	rootCmd.SetArgs(full)
	return rootCmd.ExecuteContext(context.Background())
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("SHIKABOM_DATABASE_DRIVER", "")
	t.Setenv("SHIKABOM_DATABASE_DSN", "")
	t.Setenv("DATABASE_URL", "")
	t.Chdir(dir)
	return filepath.Join(dir, "inv.db")
}

func TestCommandsAgainstSQLite(t *testing.T) {
	db := isolate(t)

	steps := [][]string{
		{"migrate"},
		{"parts", "add", "R1", "--mfg", "Yageo", "--value", "10k"},
		{"stock", "add", "R1", "Drawer A", "40"},
		{"stock", "levels", "R1", "--threshold", "50"},
		{"projects", "create", "Widget"},
		{"projects", "add", "Widget", "R1", "2", "-d", "R1,R2"},
		{"parts", "list"},
		{"stock", "list"},
		{"projects", "show", "Widget"},
	}
	for _, args := range steps {
		if err := run(t, db, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	ctx := context.Background()
	s, err := sqlite.Open(ctx, db)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	p, err := s.GetPart(ctx, "R1")
	if err != nil {
		t.Fatalf("GetPart: %v", err)
	}
	if p.Manufacturer != "Yageo" || p.TotalQty != 40 {
		t.Errorf("Expected Yageo x40, got %+v", p)
	}
	stock, err := s.ListStock(ctx)
	if err != nil {
		t.Fatalf("ListStock: %v", err)
	}
	if len(stock) != 1 || !stock[0].IsLow() {
		t.Errorf("Expected R1 stocked and low, got %+v", stock)
	}
	proj, err := s.GetProject(ctx, "Widget")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if len(proj.Parts) != 1 || proj.Parts[0].Designators != "R1,R2" {
		t.Errorf("Expected one BOM line, got %+v", proj.Parts)
	}
}

func TestExportAndImportCommands(t *testing.T) {
	db := isolate(t)
	dir := filepath.Dir(db)

	for _, args := range [][]string{
		{"parts", "add", "C1", "--mfg", "Murata"},
		{"stock", "add", "C1", "Bin 3", "12"},
		{"projects", "create", "Amp"},
		{"projects", "add", "Amp", "C1", "4", "-d", ""},
		{"export", "bom", "Amp", filepath.Join(dir, "out", "amp.csv")},
		{"export", "catalog", filepath.Join(dir, "catalog.yaml")},
	} {
		if err := run(t, db, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	csv, err := os.ReadFile(filepath.Join(dir, "out", "amp.csv"))
	if err != nil {
		t.Fatalf("read bom: %v", err)
	}
	if want := "C1,,4"; !strings.Contains(string(csv), want) {
		t.Errorf("Expected %q in bom, got:\n%s", want, csv)
	}

	other := filepath.Join(dir, "other.db")
	if err := run(t, other, "import", filepath.Join(dir, "catalog.yaml")); err != nil {
		t.Fatalf("import: %v", err)
	}
	ctx := context.Background()
	s, err := sqlite.Open(ctx, other)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	p, err := s.GetPart(ctx, "C1")
	if err != nil {
		t.Fatalf("GetPart: %v", err)
	}
	if p.TotalQty != 12 {
		t.Errorf("Expected 12 imported, got %d", p.TotalQty)
	}
}

func TestCommandErrors(t *testing.T) {
	db := isolate(t)

	if err := run(t, db, "stock", "add", "NOPE", "Bin", "1"); err == nil {
		t.Error("Expected error stocking an unknown part")
	}
	if err := run(t, db, "stock", "add", "R1", "Bin", "lots"); err == nil {
		t.Error("Expected error for a non-numeric quantity")
	}
	if err := run(t, db, "projects", "show", "Nothing"); err == nil {
		t.Error("Expected error for a missing project")
	}
}

func TestTUIRefusesWithoutTerminal(t *testing.T) {
	db := isolate(t)

	err := run(t, db)
	if err != errNotATerminal {
		t.Errorf("Expected errNotATerminal under go test, got %v", err)
	}
}
