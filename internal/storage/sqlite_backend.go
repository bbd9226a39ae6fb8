package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/planify/planify/internal/tracker"

	_ "modernc.org/sqlite" // register sqlite driver
)

// schemaDDL defines the database schema for the SQLite backend.
//
// A single key/value table mirrors the per-key layout of the JSON backend;
// each value is the JSON encoding of one snapshot collection or flag.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS tracker_state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLiteBackend implements tracker.Backend using a SQLite database.
// Uses WAL mode for better concurrent access.
type SQLiteBackend struct {
	// DBPath is the absolute path to the SQLite database file.
	DBPath string
}

// NewSQLiteBackend creates a SQLiteBackend and initializes the schema.
// Parent directories are created if they don't exist. Returns an error if
// the database cannot be opened or the schema cannot be created.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	backend := &SQLiteBackend{DBPath: dbPath}

	if err := backend.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return backend, nil
}

// connect opens a new database connection with WAL mode enabled, creating
// parent directories as needed.
func (b *SQLiteBackend) connect() (*sql.DB, error) {
	dir := filepath.Dir(b.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", b.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	return db, nil
}

func (b *SQLiteBackend) ensureSchema() error {
	db, err := b.connect()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("failed to execute schema DDL: %w", err)
	}

	return nil
}

// Load reads every persisted key from the database into a normalized
// snapshot. Missing rows and malformed values fall back to the key's
// default. Returns an error only if the database itself cannot be read.
func (b *SQLiteBackend) Load() (*tracker.Snapshot, error) {
	db, err := b.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query("SELECT key, value FROM tracker_state")
	if err != nil {
		return nil, fmt.Errorf("failed to query state: %w", err)
	}
	defer rows.Close()

	snap := tracker.NewSnapshot()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		decodeKey(snap, key, []byte(value))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	snap.Normalize()
	return snap, nil
}

// Save upserts every persisted key. Keys are written one statement at a
// time, matching the JSON backend's per-key durability.
func (b *SQLiteBackend) Save(snap *tracker.Snapshot) error {
	db, err := b.connect()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, key := range allKeys {
		data, err := encodeKey(snap, key)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		_, err = db.Exec(
			"INSERT INTO tracker_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, string(data),
		)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return nil
}
