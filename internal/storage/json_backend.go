package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/planify/planify/internal/tracker"
)

// JSONBackend implements tracker.Backend using a directory of JSON files,
// one per persisted key (objectives.json, tasks.json, ...).
//
// Each file is replaced atomically via a temporary file and os.Rename so an
// interrupted write never corrupts an existing key.
type JSONBackend struct {
	// Dir is the absolute path of the data directory.
	Dir string
}

// NewJSONBackend creates a JSONBackend rooted at dir. The directory is
// created lazily on the first save.
func NewJSONBackend(dir string) *JSONBackend {
	return &JSONBackend{Dir: dir}
}

func (b *JSONBackend) keyPath(key string) string {
	return filepath.Join(b.Dir, key+".json")
}

// Load reads every persisted key from the data directory into a normalized
// snapshot. A missing directory, missing file, unreadable file, or malformed
// JSON value all fall back to that key's default; Load never returns an
// error so a fresh or damaged data directory starts the tracker empty.
func (b *JSONBackend) Load() (*tracker.Snapshot, error) {
	snap := tracker.NewSnapshot()

	for _, key := range allKeys {
		data, err := os.ReadFile(b.keyPath(key))
		if err != nil {
			continue
		}
		decodeKey(snap, key, data)
	}

	snap.Normalize()
	return snap, nil
}

// Save writes every persisted key to its own file. Keys are written one at
// a time; a failure aborts the save and reports which key failed, leaving
// earlier keys already persisted.
func (b *JSONBackend) Save(snap *tracker.Snapshot) error {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	for _, key := range allKeys {
		data, err := encodeKey(snap, key)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		if err := b.writeFileAtomic(b.keyPath(key), data); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return nil
}

// writeFileAtomic writes data to path through a temp file in the same
// directory followed by an atomic rename.
func (b *JSONBackend) writeFileAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(b.Dir, "*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(append(data, '\n'))
	closeErr := tmpFile.Close()

	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return closeErr
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
