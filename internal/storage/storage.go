// Package storage provides the persistence backends for tracker snapshots.
//
// Three backends implement tracker.Backend: a JSON directory store that
// keeps one file per persisted key, a SQLite store, and a PostgreSQL store.
// All backends share the same key/value layout so persisted state mirrors
// the original client's localStorage keys, and all of them recover
// gracefully at load time: an absent or malformed value yields that key's
// documented default instead of an error.
package storage

import (
	"encoding/json"

	"github.com/planify/planify/internal/tracker"
)

// Persisted keys. Each key is serialized independently: a crash between
// writing one key and the next can leave collections mutually inconsistent,
// an accepted risk in this domain.
const (
	keyDarkMode            = "darkMode"
	keyShowWelcome         = "showWelcome"
	keyObjectives          = "objectives"
	keyTasks               = "tasks"
	keyCompletedObjectives = "completedObjectives"
	keyCompletedTasks      = "completedTasks"
	keyNotes               = "notes"
	keyHistory             = "history"
	keyUpdates             = "updates"
)

// allKeys is the save/load order. Load order does not matter; save order is
// kept stable so partial writes fail predictably.
var allKeys = []string{
	keyDarkMode,
	keyShowWelcome,
	keyObjectives,
	keyTasks,
	keyCompletedObjectives,
	keyCompletedTasks,
	keyNotes,
	keyHistory,
	keyUpdates,
}

// encodeKey marshals the snapshot field behind key to JSON.
func encodeKey(snap *tracker.Snapshot, key string) ([]byte, error) {
	switch key {
	case keyDarkMode:
		return json.Marshal(snap.DarkMode)
	case keyShowWelcome:
		return json.Marshal(snap.ShowWelcome)
	case keyObjectives:
		return json.Marshal(snap.Objectives)
	case keyTasks:
		return json.Marshal(snap.Tasks)
	case keyCompletedObjectives:
		return json.Marshal(snap.CompletedObjectives)
	case keyCompletedTasks:
		return json.Marshal(snap.CompletedTasks)
	case keyNotes:
		return json.Marshal(snap.Notes)
	case keyHistory:
		return json.Marshal(snap.History)
	case keyUpdates:
		return json.Marshal(snap.Updates)
	}
	return nil, nil
}

// decodeKey unmarshals data into the snapshot field behind key. Malformed
// data leaves the field at its default; this mirrors the original client's
// load-time tolerance and never surfaces an error.
func decodeKey(snap *tracker.Snapshot, key string, data []byte) {
	if len(data) == 0 {
		return
	}
	switch key {
	case keyDarkMode:
		_ = json.Unmarshal(data, &snap.DarkMode)
	case keyShowWelcome:
		_ = json.Unmarshal(data, &snap.ShowWelcome)
	case keyObjectives:
		_ = json.Unmarshal(data, &snap.Objectives)
	case keyTasks:
		_ = json.Unmarshal(data, &snap.Tasks)
	case keyCompletedObjectives:
		_ = json.Unmarshal(data, &snap.CompletedObjectives)
	case keyCompletedTasks:
		_ = json.Unmarshal(data, &snap.CompletedTasks)
	case keyNotes:
		_ = json.Unmarshal(data, &snap.Notes)
	case keyHistory:
		_ = json.Unmarshal(data, &snap.History)
	case keyUpdates:
		_ = json.Unmarshal(data, &snap.Updates)
	}
}
