package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/planify/planify/internal/storage"
	"github.com/planify/planify/internal/tracker"
)

// ---------------------------------------------------------------------------
// NewSQLiteBackend
// ---------------------------------------------------------------------------

func Test_NewSQLiteBackend_CreatesDatabaseAndParents(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "planify.db")

	backend, err := storage.NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}
	var _ tracker.Backend = backend

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected database file created: %v", err)
	}
}

// ---------------------------------------------------------------------------
// SQLiteBackend Load / Save
// ---------------------------------------------------------------------------

func Test_SQLiteBackend_Load_FreshDatabaseStartsEmpty(t *testing.T) {
	t.Parallel()
	backend, err := storage.NewSQLiteBackend(filepath.Join(t.TempDir(), "planify.db"))
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}

	snap, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Objectives) != 0 || len(snap.Tasks) != 0 {
		t.Error("expected an empty snapshot from a fresh database")
	}
	if snap.Objectives == nil {
		t.Error("expected collections allocated, got nil slice")
	}
}

func Test_SQLiteBackend_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()
	backend, err := storage.NewSQLiteBackend(filepath.Join(t.TempDir(), "planify.db"))
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}
	assertRoundTrip(t, backend, makeSnapshot())
}

func Test_SQLiteBackend_Save_UpsertsExistingKeys(t *testing.T) {
	t.Parallel()
	backend, err := storage.NewSQLiteBackend(filepath.Join(t.TempDir(), "planify.db"))
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}

	if err := backend.Save(makeSnapshot()); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := backend.Save(tracker.NewSnapshot()); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	snap, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Objectives) != 0 {
		t.Errorf("expected second save to overwrite, got %+v", snap.Objectives)
	}
	if snap.DarkMode {
		t.Error("expected dark mode flag overwritten to false")
	}
}

func Test_SQLiteBackend_SurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "planify.db")

	first, err := storage.NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}
	if err := first.Save(makeSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second, err := storage.NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	snap, err := second.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Objectives) != 1 || snap.Objectives[0].ID != "o1" {
		t.Errorf("expected persisted objective after reopen, got %+v", snap.Objectives)
	}
}
