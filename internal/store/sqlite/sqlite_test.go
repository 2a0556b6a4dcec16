package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/internal/store/sqlstore"
	"github.com/ShayCichocki/shikabom/internal/store/storetest"
)

// setupTestDB creates a new temporary database for testing.
func setupTestDB(t *testing.T) *sqlstore.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return setupTestDB(t) })
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b")
	db, err := Open(context.Background(), filepath.Join(nested, "inv.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(nested); os.IsNotExist(err) {
		t.Errorf("parent directories not created: %s", nested)
	}
}

func TestMigrate_RecordsVersions(t *testing.T) {
	db := setupTestDB(t)
	v, err := db.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	want := len(sqlstore.Migrations(Dialect{}))
	if v != want {
		t.Errorf("SchemaVersion() = %d, want %d", v, want)
	}
}

func TestDialect_IsDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	if _, err := db.Conn().ExecContext(ctx, "INSERT INTO projects (project_name) VALUES ('x')"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := db.Conn().ExecContext(ctx, "INSERT INTO projects (project_name) VALUES ('x')")
	if !(Dialect{}).IsDuplicate(err) {
		t.Errorf("IsDuplicate(%v) = false, want true", err)
	}
	if (Dialect{}).IsDuplicate(errors.New("boom")) {
		t.Error("IsDuplicate(plain error) = true, want false")
	}
	if (Dialect{}).IsDuplicate(nil) {
		t.Error("IsDuplicate(nil) = true, want false")
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Conn().ExecContext(context.Background(),
		"INSERT INTO stock (partnumber) VALUES ('nobody')")
	if err == nil {
		t.Error("expected foreign key violation inserting stock for unknown part")
	}
}
