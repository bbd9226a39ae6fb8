package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/planify/planify/internal/tracker"
)

// GetBackend returns the configured storage backend based on environment
// variables.
//
// Environment variables:
//   - PLANIFY_STORAGE_BACKEND: "json" (default), "sqlite", or "postgres"
//   - PLANIFY_DATA_PATH: custom JSON data directory (default: <dataDir>/state)
//   - PLANIFY_SQLITE_PATH: custom SQLite path (default: <dataDir>/planify.db)
//   - PLANIFY_POSTGRES_URL: PostgreSQL connection string (required for the
//     postgres backend)
//
// Returns an error if the backend type is unknown or a custom path escapes
// dataDir.
func GetBackend(dataDir string) (tracker.Backend, error) {
	backendType := strings.ToLower(strings.TrimSpace(os.Getenv("PLANIFY_STORAGE_BACKEND")))
	if backendType == "" {
		backendType = "json"
	}

	switch backendType {
	case "json":
		path, err := resolveDataPath(dataDir, os.Getenv("PLANIFY_DATA_PATH"), "state")
		if err != nil {
			return nil, fmt.Errorf("invalid PLANIFY_DATA_PATH: %w", err)
		}
		return NewJSONBackend(path), nil

	case "sqlite":
		path, err := resolveDataPath(dataDir, os.Getenv("PLANIFY_SQLITE_PATH"), "planify.db")
		if err != nil {
			return nil, fmt.Errorf("invalid PLANIFY_SQLITE_PATH: %w", err)
		}
		return NewSQLiteBackend(path)

	case "postgres":
		connStr := strings.TrimSpace(os.Getenv("PLANIFY_POSTGRES_URL"))
		if connStr == "" {
			return nil, fmt.Errorf("PLANIFY_POSTGRES_URL is required for the postgres backend")
		}
		return NewPostgresBackend(connStr)

	default:
		return nil, fmt.Errorf("unknown storage backend: %q. Expected 'json', 'sqlite' or 'postgres'", backendType)
	}
}

// resolveDataPath resolves custom (when non-empty, else fallback) against
// baseDir and verifies the result stays within baseDir. Relative custom
// paths are joined with baseDir; absolute ones are validated for
// containment, guarding against traversal through configuration.
func resolveDataPath(baseDir, custom, fallback string) (string, error) {
	custom = strings.TrimSpace(custom)
	if custom == "" {
		return filepath.Join(baseDir, fallback), nil
	}
	if strings.Contains(custom, "\x00") {
		return "", fmt.Errorf("path contains null byte")
	}

	candidate := custom
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(filepath.Clean(baseDir), candidate)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes data directory: %s", custom)
	}

	return candidate, nil
}
