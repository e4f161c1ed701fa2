package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/banshee-data/turbgrid/internal/testutil"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenDB_AppliesPragmas(t *testing.T) {
	db := openTestDB(t)

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Failed to query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected journal_mode=wal, got %s", journalMode)
	}

	var foreignKeys int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("Failed to query foreign_keys: %v", err)
	}
	if foreignKeys != 1 {
		t.Errorf("Expected foreign_keys=1, got %d", foreignKeys)
	}
}

func TestNewDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grids.db")
	db, err := NewDB(path)
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='turbulence_grids'`).Scan(&name)
	if err != nil {
		t.Fatalf("turbulence_grids table missing: %v", err)
	}

	version, dirty, err := db.MigrateVersion(MigrationsFS())
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("version = %d dirty = %v, want 1 clean", version, dirty)
	}
}

func TestNewDB_ReopenIsIdempotent(t *testing.T) {
	path := testutil.TempDBPath(t)
	db, err := NewDB(path)
	testutil.AssertNoError(t, err)
	db.Close()

	db2, err := NewDB(path)
	testutil.AssertNoError(t, err)
	db2.Close()
}

func TestMigrateUpDown(t *testing.T) {
	db := openTestDB(t)

	migrations := fstest.MapFS{
		"000001_create_test_table.up.sql":   {Data: []byte(`CREATE TABLE test_table (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`)},
		"000001_create_test_table.down.sql": {Data: []byte(`DROP TABLE IF EXISTS test_table;`)},
		"000002_add_test_index.up.sql":      {Data: []byte(`CREATE INDEX idx_test_name ON test_table (name);`)},
		"000002_add_test_index.down.sql":    {Data: []byte(`DROP INDEX IF EXISTS idx_test_name;`)},
	}

	version, _, err := db.MigrateVersion(migrations)
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 before migrating, got %d", version)
	}

	if err := db.MigrateUp(migrations); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	// Second run is a no-op.
	if err := db.MigrateUp(migrations); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}
	version, _, _ = db.MigrateVersion(migrations)
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	if err := db.MigrateDown(migrations); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	version, _, _ = db.MigrateVersion(migrations)
	if version != 1 {
		t.Errorf("expected version 1 after down, got %d", version)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_test_name'`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("index should be dropped after down migration")
	}
}

func TestMigrationsFS_ContainsPairs(t *testing.T) {
	for _, name := range []string{
		"000001_create_turbulence_grids.up.sql",
		"000001_create_turbulence_grids.down.sql",
	} {
		if _, err := MigrationsFS().Open(name); err != nil {
			t.Errorf("missing embedded migration %s: %v", name, err)
		}
	}
}
