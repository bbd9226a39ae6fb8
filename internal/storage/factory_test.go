package storage_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/planify/planify/internal/storage"
)

// Factory tests mutate the environment via t.Setenv and therefore do not run
// in parallel.

// ---------------------------------------------------------------------------
// Backend selection
// ---------------------------------------------------------------------------

func Test_GetBackend_DefaultsToJSON(t *testing.T) {
	t.Setenv("PLANIFY_STORAGE_BACKEND", "")
	t.Setenv("PLANIFY_DATA_PATH", "")
	dataDir := t.TempDir()

	backend, err := storage.GetBackend(dataDir)
	if err != nil {
		t.Fatalf("GetBackend failed: %v", err)
	}

	jsonBackend, ok := backend.(*storage.JSONBackend)
	if !ok {
		t.Fatalf("expected *JSONBackend, got %T", backend)
	}
	if want := filepath.Join(dataDir, "state"); jsonBackend.Dir != want {
		t.Errorf("expected data dir %q, got %q", want, jsonBackend.Dir)
	}
}

func Test_GetBackend_SelectsSQLite(t *testing.T) {
	t.Setenv("PLANIFY_STORAGE_BACKEND", "sqlite")
	t.Setenv("PLANIFY_SQLITE_PATH", "")
	dataDir := t.TempDir()

	backend, err := storage.GetBackend(dataDir)
	if err != nil {
		t.Fatalf("GetBackend failed: %v", err)
	}

	sqliteBackend, ok := backend.(*storage.SQLiteBackend)
	if !ok {
		t.Fatalf("expected *SQLiteBackend, got %T", backend)
	}
	if want := filepath.Join(dataDir, "planify.db"); sqliteBackend.DBPath != want {
		t.Errorf("expected db path %q, got %q", want, sqliteBackend.DBPath)
	}
}

func Test_GetBackend_BackendNameIsCaseInsensitive(t *testing.T) {
	t.Setenv("PLANIFY_STORAGE_BACKEND", "  JSON  ")
	t.Setenv("PLANIFY_DATA_PATH", "")

	if _, err := storage.GetBackend(t.TempDir()); err != nil {
		t.Errorf("expected mixed-case name accepted, got %v", err)
	}
}

func Test_GetBackend_UnknownBackendFails(t *testing.T) {
	t.Setenv("PLANIFY_STORAGE_BACKEND", "cassandra")

	_, err := storage.GetBackend(t.TempDir())
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "cassandra") {
		t.Errorf("expected error to name the backend, got %v", err)
	}
}

func Test_GetBackend_PostgresRequiresURL(t *testing.T) {
	t.Setenv("PLANIFY_STORAGE_BACKEND", "postgres")
	t.Setenv("PLANIFY_POSTGRES_URL", "")

	if _, err := storage.GetBackend(t.TempDir()); err == nil {
		t.Fatal("expected error without PLANIFY_POSTGRES_URL")
	}
}

// ---------------------------------------------------------------------------
// Custom path handling
// ---------------------------------------------------------------------------

func Test_GetBackend_RelativeCustomPathJoinsDataDir(t *testing.T) {
	t.Setenv("PLANIFY_STORAGE_BACKEND", "json")
	t.Setenv("PLANIFY_DATA_PATH", "mydata")
	dataDir := t.TempDir()

	backend, err := storage.GetBackend(dataDir)
	if err != nil {
		t.Fatalf("GetBackend failed: %v", err)
	}

	jsonBackend := backend.(*storage.JSONBackend)
	if want := filepath.Join(dataDir, "mydata"); jsonBackend.Dir != want {
		t.Errorf("expected %q, got %q", want, jsonBackend.Dir)
	}
}

func Test_GetBackend_PathEscapeRejected(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"parent traversal", "../outside"},
		{"deep traversal", "../../etc/passwd"},
		{"absolute path outside", "/etc/planify"},
		{"traversal through valid segment", "mydata/../../outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PLANIFY_STORAGE_BACKEND", "json")
			t.Setenv("PLANIFY_DATA_PATH", tt.path)

			if _, err := storage.GetBackend(t.TempDir()); err == nil {
				t.Errorf("expected %q rejected", tt.path)
			}
		})
	}
}

func Test_GetBackend_NullByteRejected(t *testing.T) {
	t.Setenv("PLANIFY_STORAGE_BACKEND", "json")
	t.Setenv("PLANIFY_DATA_PATH", "bad\x00path")

	if _, err := storage.GetBackend(t.TempDir()); err == nil {
		t.Error("expected null byte rejected")
	}
}
