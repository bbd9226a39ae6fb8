// Package tracker implements the core domain model of the Planify
// productivity tracker: objectives, tasks, notes, the append-only history
// log, progress aggregation, period-bucketed views, and the Store that owns
// all mutations.
//
// The package defines the Backend interface that persistence adapters must
// implement; implementations live in internal/storage. All entities
// reference each other by id only, and the Store is responsible for keeping
// the bidirectional objective-task relation consistent on every mutation.
package tracker

import (
	"encoding/json"
	"time"
)

// Priority orders items for display. Higher priorities sort first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank maps a priority to its sort weight. Unknown values rank below low.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Recurrence describes how often a recurring task repeats.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// ItemKind discriminates between the two completable entity kinds.
type ItemKind string

const (
	KindObjective ItemKind = "objective"
	KindTask      ItemKind = "task"
)

// SubItem is a manually entered piece of partial progress inside an
// objective that has no linked tasks ("completed item" in the UI).
type SubItem struct {
	Text       string  `json:"text"`
	Percentage float64 `json:"percentage"`
}

// Objective is a long-lived goal, optionally composed of linked tasks or
// manual sub-items.
//
// Progress is the manually stored percentage. It only matters while the
// objective has neither linked tasks nor sub-items; once either source
// exists, displayed progress is derived from them at view time and the
// stored value serves as the fallback when the sources go away again.
// The JSON tags match the persisted localStorage format of the original
// client ("tasks" for linked task ids, "completedItems" for sub-items).
type Objective struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`

	// Date is the target date the objective should be achieved by.
	Date time.Time `json:"date"`

	Priority Priority `json:"priority"`
	Tags     []string `json:"tags"`

	// TaskIDs lists the ids of linked active tasks. Each referenced task
	// carries this objective's id in its ObjectiveID field.
	TaskIDs []string `json:"tasks"`

	SubItems []SubItem `json:"completedItems"`
	Ideas    []string  `json:"ideas"`

	// Reminder and Alarm are optional "HH:MM" times of day.
	Reminder string `json:"reminder,omitempty"`
	Alarm    string `json:"alarm,omitempty"`

	// Progress is the manually stored completion percentage in [0,100].
	Progress float64 `json:"progress"`

	NoteIDs []string `json:"noteIds,omitempty"`

	// CompletedDate is set only while the objective lives in the completed
	// collection.
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

// Task is a short-lived, dated action, optionally contributing a percentage
// toward one parent objective.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
	Date      time.Time `json:"date"`

	Priority Priority `json:"priority"`
	Tags     []string `json:"tags"`

	// ObjectiveID references the parent objective, if any. When set on an
	// active task, the objective's TaskIDs list contains this task's id. On
	// a completed task the field remains as historical context only.
	ObjectiveID string `json:"objectiveId,omitempty"`

	// Percentage is this task's contribution in [0,100] when aggregating
	// into its parent objective.
	Percentage float64 `json:"percentage"`

	Reminder string `json:"reminder,omitempty"`
	Alarm    string `json:"alarm,omitempty"`

	Recurrence Recurrence `json:"recurrence,omitempty"`

	// RecurringDays holds the weekdays a recurring template generates a
	// daily task on (Sunday=0).
	RecurringDays []time.Weekday `json:"recurringDays,omitempty"`

	NoteIDs []string `json:"noteIds,omitempty"`

	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

// Note is a freestanding or linked annotation. Notes survive deletion of the
// item they link to; the dangling reference is kept as-is.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	LinkedItemID   string   `json:"linkedItemId,omitempty"`
	LinkedItemType ItemKind `json:"linkedItemType,omitempty"`
}

// Action names the mutation recorded by a history entry.
type Action string

const (
	ActionCreated            Action = "created"
	ActionUpdated            Action = "updated"
	ActionUpdatedCompleted   Action = "updated_completed"
	ActionCompleted          Action = "completed"
	ActionUndoCompleted      Action = "undo_completed"
	ActionDeleted            Action = "deleted"
	ActionDeletedCompleted   Action = "deleted_completed"
	ActionRecurringGenerated Action = "recurring_generated"
)

// HistoryEntry is an immutable audit record of a single mutation. Item holds
// a JSON snapshot of the affected entity at mutation time; it is written
// once and never parsed back or pruned.
type HistoryEntry struct {
	Action    Action          `json:"action"`
	Kind      ItemKind        `json:"kind"`
	Item      json.RawMessage `json:"item"`
	Timestamp time.Time       `json:"timestamp"`
}

// Update is one announcement from the remote update feed, as persisted
// locally. Seen is sticky: once true it stays true across refetches.
type Update struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Seen     bool   `json:"seen"`
	UpdateID string `json:"updateId,omitempty"`
}

// Snapshot is the full persisted state of a tracker session, one field per
// persisted key. Backends load and save whole snapshots; a crash between
// writing one key and another may leave collections mutually inconsistent,
// which is an accepted risk in this domain.
type Snapshot struct {
	DarkMode    bool `json:"darkMode"`
	ShowWelcome bool `json:"showWelcome"`

	Objectives          []Objective `json:"objectives"`
	Tasks               []Task      `json:"tasks"`
	CompletedObjectives []Objective `json:"completedObjectives"`
	CompletedTasks      []Task      `json:"completedTasks"`

	Notes   []Note         `json:"notes"`
	History []HistoryEntry `json:"history"`
	Updates []Update       `json:"updates"`
}

// Backend is the persistence adapter injected into a Store.
//
// Load must recover gracefully: an absent or malformed underlying store
// yields a normalized empty snapshot rather than an error wherever possible.
// Save persists the whole snapshot synchronously.
type Backend interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}

// NewSnapshot returns an empty snapshot with all collections allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Objectives:          make([]Objective, 0),
		Tasks:               make([]Task, 0),
		CompletedObjectives: make([]Objective, 0),
		CompletedTasks:      make([]Task, 0),
		Notes:               make([]Note, 0),
		History:             make([]HistoryEntry, 0),
		Updates:             make([]Update, 0),
	}
}

// Normalize fills in missing fields on records loaded from older persisted
// state: nil slices become empty, percentages are clamped to [0,100], and
// defaults are applied where a field was never written. It runs once at load
// time so the rest of the code can rely on a fully-populated shape.
func (s *Snapshot) Normalize() {
	if s.Objectives == nil {
		s.Objectives = make([]Objective, 0)
	}
	if s.Tasks == nil {
		s.Tasks = make([]Task, 0)
	}
	if s.CompletedObjectives == nil {
		s.CompletedObjectives = make([]Objective, 0)
	}
	if s.CompletedTasks == nil {
		s.CompletedTasks = make([]Task, 0)
	}
	if s.Notes == nil {
		s.Notes = make([]Note, 0)
	}
	if s.History == nil {
		s.History = make([]HistoryEntry, 0)
	}
	if s.Updates == nil {
		s.Updates = make([]Update, 0)
	}

	for i := range s.Objectives {
		normalizeObjective(&s.Objectives[i])
	}
	for i := range s.CompletedObjectives {
		normalizeObjective(&s.CompletedObjectives[i])
	}
	for i := range s.Tasks {
		normalizeTask(&s.Tasks[i])
	}
	for i := range s.CompletedTasks {
		normalizeTask(&s.CompletedTasks[i])
	}
}

func normalizeObjective(o *Objective) {
	if o.Tags == nil {
		o.Tags = make([]string, 0)
	}
	if o.TaskIDs == nil {
		o.TaskIDs = make([]string, 0)
	}
	if o.SubItems == nil {
		o.SubItems = make([]SubItem, 0)
	}
	if o.Ideas == nil {
		o.Ideas = make([]string, 0)
	}
	if o.Priority == "" {
		o.Priority = PriorityMedium
	}
	o.Progress = clampPercent(o.Progress)
	for i := range o.SubItems {
		o.SubItems[i].Percentage = clampPercent(o.SubItems[i].Percentage)
	}
}

func normalizeTask(t *Task) {
	if t.Tags == nil {
		t.Tags = make([]string, 0)
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Recurrence == "" {
		t.Recurrence = RecurrenceNone
	}
	t.Percentage = clampPercent(t.Percentage)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
