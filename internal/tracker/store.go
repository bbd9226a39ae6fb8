package tracker

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns the in-memory entity collections and every mutation on them.
// No other component mutates the collections directly.
//
// Each mutating method appends one history entry and synchronously persists
// the whole snapshot through the injected backend. Persistence failures are
// logged and otherwise ignored: nothing in this system is fatal. Operations
// referencing a missing id are tolerated as no-ops.
//
// A Store is safe for use from multiple goroutines; the recurring sweep and
// the tool server share one instance.
type Store struct {
	mu      sync.Mutex
	backend Backend
	log     *zap.Logger
	now     func() time.Time
	newID   func() string
	snap    *Snapshot
}

// StoreOption configures a Store at construction time.
type StoreOption func(*Store)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides id assignment, for tests.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewStore loads the persisted snapshot through backend, normalizes it, and
// returns a Store ready for mutations. A backend load failure starts the
// store from an empty snapshot; it is logged, not returned.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend: backend,
		log:     zap.NewNop(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := backend.Load()
	if err != nil || snap == nil {
		if err != nil {
			s.log.Warn("failed to load persisted state, starting empty", zap.Error(err))
		}
		snap = NewSnapshot()
	}
	snap.Normalize()
	s.snap = snap

	return s
}

// save persists the current snapshot. Called with the lock held after every
// mutation.
func (s *Store) save() {
	if err := s.backend.Save(s.snap); err != nil {
		s.log.Warn("failed to persist state", zap.Error(err))
	}
}

// appendHistory records one audit entry. The entity is snapshotted as JSON
// at call time so later mutations cannot alter it.
func (s *Store) appendHistory(action Action, kind ItemKind, entity any) {
	item, err := json.Marshal(entity)
	if err != nil {
		s.log.Warn("failed to snapshot history item", zap.Error(err))
		item = json.RawMessage("null")
	}
	s.snap.History = append(s.snap.History, HistoryEntry{
		Action:    action,
		Kind:      kind,
		Item:      item,
		Timestamp: s.now(),
	})
}

func (s *Store) findObjective(id string) *Objective {
	for i := range s.snap.Objectives {
		if s.snap.Objectives[i].ID == id {
			return &s.snap.Objectives[i]
		}
	}
	return nil
}

func (s *Store) findTask(id string) *Task {
	for i := range s.snap.Tasks {
		if s.snap.Tasks[i].ID == id {
			return &s.snap.Tasks[i]
		}
	}
	return nil
}

func (s *Store) findCompletedObjective(id string) *Objective {
	for i := range s.snap.CompletedObjectives {
		if s.snap.CompletedObjectives[i].ID == id {
			return &s.snap.CompletedObjectives[i]
		}
	}
	return nil
}

func (s *Store) findCompletedTask(id string) *Task {
	for i := range s.snap.CompletedTasks {
		if s.snap.CompletedTasks[i].ID == id {
			return &s.snap.CompletedTasks[i]
		}
	}
	return nil
}

// linkTask appends taskID to the objective's linked-task list if the
// objective exists and the id is not already present.
func (s *Store) linkTask(objectiveID, taskID string) {
	obj := s.findObjective(objectiveID)
	if obj == nil {
		return
	}
	for _, id := range obj.TaskIDs {
		if id == taskID {
			return
		}
	}
	obj.TaskIDs = append(obj.TaskIDs, taskID)
}

// unlinkTask removes taskID from the objective's linked-task list.
func (s *Store) unlinkTask(objectiveID, taskID string) {
	obj := s.findObjective(objectiveID)
	if obj == nil {
		return
	}
	kept := obj.TaskIDs[:0]
	for _, id := range obj.TaskIDs {
		if id != taskID {
			kept = append(kept, id)
		}
	}
	obj.TaskIDs = kept
}

// ObjectiveFields carries the caller-supplied attributes of a new objective.
type ObjectiveFields struct {
	Text     string
	Details  string
	Date     time.Time
	Priority Priority
	Tags     []string
	Reminder string
	Alarm    string
}

// AddObjective creates a new objective, records it, and returns it.
func (s *Store) AddObjective(f ObjectiveFields) Objective {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := Objective{
		ID:        s.newID(),
		Text:      f.Text,
		Details:   f.Details,
		CreatedAt: s.now(),
		Date:      f.Date,
		Priority:  f.Priority,
		Tags:      f.Tags,
		TaskIDs:   make([]string, 0),
		SubItems:  make([]SubItem, 0),
		Ideas:     make([]string, 0),
		Reminder:  f.Reminder,
		Alarm:     f.Alarm,
	}
	normalizeObjective(&obj)

	s.snap.Objectives = append(s.snap.Objectives, obj)
	s.appendHistory(ActionCreated, KindObjective, obj)
	s.save()
	return obj
}

// TaskFields carries the caller-supplied attributes of a new task.
type TaskFields struct {
	Text          string
	Details       string
	Date          time.Time
	Priority      Priority
	Tags          []string
	ObjectiveID   string
	Percentage    float64
	Reminder      string
	Alarm         string
	Recurrence    Recurrence
	RecurringDays []time.Weekday
}

// AddTask creates a new task, records it, and returns it. A non-empty
// ObjectiveID is appended to the referenced objective's linked-task list
// when that objective exists; a dangling reference is stored as-is without
// complaint.
func (s *Store) AddTask(f TaskFields) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := Task{
		ID:            s.newID(),
		Text:          f.Text,
		Details:       f.Details,
		CreatedAt:     s.now(),
		Date:          f.Date,
		Priority:      f.Priority,
		Tags:          f.Tags,
		ObjectiveID:   f.ObjectiveID,
		Percentage:    f.Percentage,
		Reminder:      f.Reminder,
		Alarm:         f.Alarm,
		Recurrence:    f.Recurrence,
		RecurringDays: f.RecurringDays,
	}
	normalizeTask(&task)

	s.snap.Tasks = append(s.snap.Tasks, task)
	if task.ObjectiveID != "" {
		s.linkTask(task.ObjectiveID, task.ID)
	}
	s.appendHistory(ActionCreated, KindTask, task)
	s.save()
	return task
}

// ObjectiveUpdate lists the fields an objective update may change. Nil
// fields are left untouched.
type ObjectiveUpdate struct {
	Text     *string
	Details  *string
	Date     *time.Time
	Priority *Priority
	Tags     *[]string
	SubItems *[]SubItem
	Ideas    *[]string
	Reminder *string
	Alarm    *string
}

// UpdateObjective merges the given fields into the matching active
// objective. A missing id is a documented no-op; the method reports whether
// a matching objective was found.
func (s *Store) UpdateObjective(id string, u ObjectiveUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := s.findObjective(id)
	if obj == nil {
		return false
	}

	applyObjectiveUpdate(obj, u)
	s.appendHistory(ActionUpdated, KindObjective, *obj)
	s.save()
	return true
}

func applyObjectiveUpdate(obj *Objective, u ObjectiveUpdate) {
	if u.Text != nil {
		obj.Text = *u.Text
	}
	if u.Details != nil {
		obj.Details = *u.Details
	}
	if u.Date != nil {
		obj.Date = *u.Date
	}
	if u.Priority != nil {
		obj.Priority = *u.Priority
	}
	if u.Tags != nil {
		obj.Tags = *u.Tags
	}
	if u.SubItems != nil {
		obj.SubItems = *u.SubItems
	}
	if u.Ideas != nil {
		obj.Ideas = *u.Ideas
	}
	if u.Reminder != nil {
		obj.Reminder = *u.Reminder
	}
	if u.Alarm != nil {
		obj.Alarm = *u.Alarm
	}
	normalizeObjective(obj)
}

// TaskUpdate lists the fields a task update may change. Nil fields are left
// untouched. ObjectiveID pointing at an empty string clears the parent
// relation.
type TaskUpdate struct {
	Text          *string
	Details       *string
	Date          *time.Time
	Priority      *Priority
	Tags          *[]string
	ObjectiveID   *string
	Percentage    *float64
	Reminder      *string
	Alarm         *string
	Recurrence    *Recurrence
	RecurringDays *[]time.Weekday
}

// UpdateTask merges the given fields into the matching active task. When the
// update changes the parent objective, the task id is moved from the old
// objective's linked-task list to the new one's in the same step. A missing
// id is a documented no-op.
func (s *Store) UpdateTask(id string, u TaskUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTask(id)
	if task == nil {
		return false
	}

	applyTaskUpdate(task, u)
	if u.ObjectiveID != nil && *u.ObjectiveID != task.ObjectiveID {
		if task.ObjectiveID != "" {
			s.unlinkTask(task.ObjectiveID, task.ID)
		}
		task.ObjectiveID = *u.ObjectiveID
		if task.ObjectiveID != "" {
			s.linkTask(task.ObjectiveID, task.ID)
		}
	}
	normalizeTask(task)

	s.appendHistory(ActionUpdated, KindTask, *task)
	s.save()
	return true
}

// applyTaskUpdate merges every field except ObjectiveID, whose handling
// differs between active tasks (link maintenance) and completed ones.
func applyTaskUpdate(task *Task, u TaskUpdate) {
	if u.Text != nil {
		task.Text = *u.Text
	}
	if u.Details != nil {
		task.Details = *u.Details
	}
	if u.Date != nil {
		task.Date = *u.Date
	}
	if u.Priority != nil {
		task.Priority = *u.Priority
	}
	if u.Tags != nil {
		task.Tags = *u.Tags
	}
	if u.Percentage != nil {
		task.Percentage = *u.Percentage
	}
	if u.Reminder != nil {
		task.Reminder = *u.Reminder
	}
	if u.Alarm != nil {
		task.Alarm = *u.Alarm
	}
	if u.Recurrence != nil {
		task.Recurrence = *u.Recurrence
	}
	if u.RecurringDays != nil {
		task.RecurringDays = *u.RecurringDays
	}
}

// UpdateCompletedObjective merges the given fields into the matching
// completed objective. The completion date is never touched, so the item
// stays in the completed collection. A missing id is a documented no-op.
func (s *Store) UpdateCompletedObjective(id string, u ObjectiveUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := s.findCompletedObjective(id)
	if obj == nil {
		return false
	}

	applyObjectiveUpdate(obj, u)
	s.appendHistory(ActionUpdatedCompleted, KindObjective, *obj)
	s.save()
	return true
}

// UpdateCompletedTask merges the given fields into the matching completed
// task. A changed ObjectiveID is stored as-is without link maintenance,
// since only active tasks participate in the objective-task relation. A
// missing id is a documented no-op.
func (s *Store) UpdateCompletedTask(id string, u TaskUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findCompletedTask(id)
	if task == nil {
		return false
	}

	applyTaskUpdate(task, u)
	if u.ObjectiveID != nil {
		task.ObjectiveID = *u.ObjectiveID
	}
	normalizeTask(task)

	s.appendHistory(ActionUpdatedCompleted, KindTask, *task)
	s.save()
	return true
}

// CompleteItem moves the matching active item into its completed collection
// and stamps its completion date. Completing a task removes its id from the
// parent objective's linked-task list; the task's own ObjectiveID field is
// kept as historical context. Reports whether the item was found.
func (s *Store) CompleteItem(kind ItemKind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	switch kind {
	case KindObjective:
		for i := range s.snap.Objectives {
			if s.snap.Objectives[i].ID != id {
				continue
			}
			obj := s.snap.Objectives[i]
			obj.CompletedDate = &now
			s.snap.Objectives = append(s.snap.Objectives[:i], s.snap.Objectives[i+1:]...)
			s.snap.CompletedObjectives = append(s.snap.CompletedObjectives, obj)
			s.appendHistory(ActionCompleted, KindObjective, obj)
			s.save()
			return true
		}
	case KindTask:
		for i := range s.snap.Tasks {
			if s.snap.Tasks[i].ID != id {
				continue
			}
			task := s.snap.Tasks[i]
			task.CompletedDate = &now
			s.snap.Tasks = append(s.snap.Tasks[:i], s.snap.Tasks[i+1:]...)
			s.snap.CompletedTasks = append(s.snap.CompletedTasks, task)
			if task.ObjectiveID != "" {
				s.unlinkTask(task.ObjectiveID, task.ID)
			}
			s.appendHistory(ActionCompleted, KindTask, task)
			s.save()
			return true
		}
	}
	return false
}

// UndoCompleteItem reverses CompleteItem: the item moves back to its active
// collection with the completion date cleared. A task's link to its parent
// objective is restored when the objective still exists; otherwise the
// relation is simply not restored.
func (s *Store) UndoCompleteItem(kind ItemKind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case KindObjective:
		for i := range s.snap.CompletedObjectives {
			if s.snap.CompletedObjectives[i].ID != id {
				continue
			}
			obj := s.snap.CompletedObjectives[i]
			obj.CompletedDate = nil
			s.snap.CompletedObjectives = append(s.snap.CompletedObjectives[:i], s.snap.CompletedObjectives[i+1:]...)
			s.snap.Objectives = append(s.snap.Objectives, obj)
			s.appendHistory(ActionUndoCompleted, KindObjective, obj)
			s.save()
			return true
		}
	case KindTask:
		for i := range s.snap.CompletedTasks {
			if s.snap.CompletedTasks[i].ID != id {
				continue
			}
			task := s.snap.CompletedTasks[i]
			task.CompletedDate = nil
			s.snap.CompletedTasks = append(s.snap.CompletedTasks[:i], s.snap.CompletedTasks[i+1:]...)
			s.snap.Tasks = append(s.snap.Tasks, task)
			if task.ObjectiveID != "" {
				s.linkTask(task.ObjectiveID, task.ID)
			}
			s.appendHistory(ActionUndoCompleted, KindTask, task)
			s.save()
			return true
		}
	}
	return false
}

// DeleteItem removes the matching active item. Deleting an objective is a
// hard cascade: every task, active or completed, whose ObjectiveID matches
// is removed with it. Deleting a task removes its id from the parent
// objective's linked-task list; the objective itself is never deleted.
func (s *Store) DeleteItem(kind ItemKind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case KindObjective:
		for i := range s.snap.Objectives {
			if s.snap.Objectives[i].ID != id {
				continue
			}
			obj := s.snap.Objectives[i]
			s.snap.Objectives = append(s.snap.Objectives[:i], s.snap.Objectives[i+1:]...)
			s.snap.Tasks = dropTasksOf(s.snap.Tasks, id)
			s.snap.CompletedTasks = dropTasksOf(s.snap.CompletedTasks, id)
			s.appendHistory(ActionDeleted, KindObjective, obj)
			s.save()
			return true
		}
	case KindTask:
		for i := range s.snap.Tasks {
			if s.snap.Tasks[i].ID != id {
				continue
			}
			task := s.snap.Tasks[i]
			s.snap.Tasks = append(s.snap.Tasks[:i], s.snap.Tasks[i+1:]...)
			if task.ObjectiveID != "" {
				s.unlinkTask(task.ObjectiveID, task.ID)
			}
			s.appendHistory(ActionDeleted, KindTask, task)
			s.save()
			return true
		}
	}
	return false
}

// DeleteCompletedItem removes the matching completed item. Deleting a
// completed objective cascades over the completed tasks that reference it;
// deleting a completed task is a simple removal.
func (s *Store) DeleteCompletedItem(kind ItemKind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case KindObjective:
		for i := range s.snap.CompletedObjectives {
			if s.snap.CompletedObjectives[i].ID != id {
				continue
			}
			obj := s.snap.CompletedObjectives[i]
			s.snap.CompletedObjectives = append(s.snap.CompletedObjectives[:i], s.snap.CompletedObjectives[i+1:]...)
			s.snap.CompletedTasks = dropTasksOf(s.snap.CompletedTasks, id)
			s.appendHistory(ActionDeletedCompleted, KindObjective, obj)
			s.save()
			return true
		}
	case KindTask:
		for i := range s.snap.CompletedTasks {
			if s.snap.CompletedTasks[i].ID != id {
				continue
			}
			task := s.snap.CompletedTasks[i]
			s.snap.CompletedTasks = append(s.snap.CompletedTasks[:i], s.snap.CompletedTasks[i+1:]...)
			s.appendHistory(ActionDeletedCompleted, KindTask, task)
			s.save()
			return true
		}
	}
	return false
}

func dropTasksOf(tasks []Task, objectiveID string) []Task {
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ObjectiveID != objectiveID {
			kept = append(kept, t)
		}
	}
	return kept
}

// View returns the four-way active/completed split for the period
// containing ref. Each active objective in the result carries its displayed
// progress, derived from its linked tasks or sub-items at call time; the
// stored snapshot is never touched.
func (s *Store) View(kind Period, ref time.Time) ViewSplit {
	s.mu.Lock()
	defer s.mu.Unlock()

	split := Filter(kind, ref, s.snap.Objectives, s.snap.Tasks, s.snap.CompletedObjectives, s.snap.CompletedTasks)
	for i := range split.ActiveObjectives {
		split.ActiveObjectives[i].Progress = ComputeObjectiveProgress(&split.ActiveObjectives[i], s.snap.Tasks, s.snap.CompletedTasks)
	}
	return split
}

// ObjectiveProgress returns the displayed progress of the active objective
// with the given id, derived from its current sources. The second return
// value reports whether the objective exists.
func (s *Store) ObjectiveProgress(id string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := s.findObjective(id)
	if obj == nil {
		return 0, false
	}
	return ComputeObjectiveProgress(obj, s.snap.Tasks, s.snap.CompletedTasks), true
}

// History returns a copy of the audit log in append order.
func (s *Store) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]HistoryEntry, len(s.snap.History))
	copy(out, s.snap.History)
	return out
}

// Snapshot returns a copy of the current state with the collection slices
// cloned, so callers cannot mutate store-owned memory.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := *s.snap
	snap.Objectives = append([]Objective(nil), s.snap.Objectives...)
	snap.Tasks = append([]Task(nil), s.snap.Tasks...)
	snap.CompletedObjectives = append([]Objective(nil), s.snap.CompletedObjectives...)
	snap.CompletedTasks = append([]Task(nil), s.snap.CompletedTasks...)
	snap.Notes = append([]Note(nil), s.snap.Notes...)
	snap.History = append([]HistoryEntry(nil), s.snap.History...)
	snap.Updates = append([]Update(nil), s.snap.Updates...)
	return snap
}

// SetDarkMode persists the dark-mode flag.
func (s *Store) SetDarkMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.DarkMode = on
	s.save()
}

// SetShowWelcome persists the welcome-overlay flag.
func (s *Store) SetShowWelcome(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.ShowWelcome = on
	s.save()
}
