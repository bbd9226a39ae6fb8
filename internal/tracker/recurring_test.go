package tracker_test

import (
	"testing"
	"time"

	"github.com/planify/planify/internal/tracker"
)

// Wednesday.
var sweepDate = time.Date(2024, time.June, 12, 6, 0, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// GenerateRecurringTasks
// ---------------------------------------------------------------------------

func Test_GenerateRecurringTasks_DailyTemplateFiresEveryDay(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t, sweepDate)

	tpl := store.AddTask(tracker.TaskFields{Text: "stretch", Recurrence: tracker.RecurrenceDaily})

	generated := store.GenerateRecurringTasks()

	if len(generated) != 1 {
		t.Fatalf("expected 1 generated task, got %d", len(generated))
	}
	got := generated[0]
	if got.ID == tpl.ID {
		t.Error("expected generated task to get a fresh id")
	}
	if got.Text != "stretch" {
		t.Errorf("expected template text carried over, got %q", got.Text)
	}
	if got.Recurrence != tracker.RecurrenceNone || len(got.RecurringDays) != 0 {
		t.Error("expected generated task to be a plain one-off")
	}
	if !got.Date.Equal(sweepDate) {
		t.Errorf("expected generated task dated %v, got %v", sweepDate, got.Date)
	}

	// Template and generated task both remain active.
	if len(store.Snapshot().Tasks) != 2 {
		t.Errorf("expected 2 active tasks, got %d", len(store.Snapshot().Tasks))
	}
}

func Test_GenerateRecurringTasks_WeekdayGating(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t, sweepDate)

	store.AddTask(tracker.TaskFields{
		Text:          "gym",
		RecurringDays: []time.Weekday{time.Monday, time.Wednesday},
	})
	store.AddTask(tracker.TaskFields{
		Text:          "groceries",
		RecurringDays: []time.Weekday{time.Saturday},
	})

	generated := store.GenerateRecurringTasks()

	if len(generated) != 1 || generated[0].Text != "gym" {
		t.Errorf("expected only the Wednesday template to fire, got %+v", generated)
	}
}

func Test_GenerateRecurringTasks_SkipsAlreadyGeneratedToday(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t, sweepDate)

	store.AddTask(tracker.TaskFields{Text: "stretch", Recurrence: tracker.RecurrenceDaily})

	first := store.GenerateRecurringTasks()
	second := store.GenerateRecurringTasks()

	if len(first) != 1 {
		t.Fatalf("expected first sweep to generate 1 task, got %d", len(first))
	}
	if len(second) != 0 {
		t.Errorf("expected second sweep on the same day to generate nothing, got %d", len(second))
	}
}

func Test_GenerateRecurringTasks_FiresAgainAfterCompletion(t *testing.T) {
	// The dedup only looks at active tasks, so completing today's
	// generated task lets the template fire a fresh one.
	t.Parallel()
	store, _ := newTestStore(t, sweepDate)

	store.AddTask(tracker.TaskFields{Text: "stretch", Recurrence: tracker.RecurrenceDaily})
	first := store.GenerateRecurringTasks()
	store.CompleteItem(tracker.KindTask, first[0].ID)

	second := store.GenerateRecurringTasks()
	if len(second) != 1 {
		t.Errorf("expected template to fire again after completion, got %d", len(second))
	}
}

func Test_GenerateRecurringTasks_InheritsObjectiveLink(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t, sweepDate)

	obj := store.AddObjective(tracker.ObjectiveFields{Text: "Fitness"})
	store.AddTask(tracker.TaskFields{
		Text:        "run",
		Recurrence:  tracker.RecurrenceDaily,
		ObjectiveID: obj.ID,
	})

	generated := store.GenerateRecurringTasks()

	if len(generated) != 1 {
		t.Fatalf("expected 1 generated task, got %d", len(generated))
	}
	parent := findObjectiveByID(t, store.Snapshot().Objectives, obj.ID)
	if !containsID(parent.TaskIDs, generated[0].ID) {
		t.Error("expected generated task linked to the template's objective")
	}
}

func Test_GenerateRecurringTasks_RecordsHistory(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t, sweepDate)

	store.AddTask(tracker.TaskFields{Text: "stretch", Recurrence: tracker.RecurrenceDaily})
	store.GenerateRecurringTasks()

	history := store.History()
	last := history[len(history)-1]
	if last.Action != tracker.ActionRecurringGenerated || last.Kind != tracker.KindTask {
		t.Errorf("expected recurring_generated/task history entry, got %s/%s", last.Action, last.Kind)
	}
}

func Test_GenerateRecurringTasks_NoTemplatesNoSave(t *testing.T) {
	t.Parallel()
	store, backend := newTestStore(t, sweepDate)

	store.AddTask(tracker.TaskFields{Text: "one-off"})
	before := backend.saves

	if got := store.GenerateRecurringTasks(); len(got) != 0 {
		t.Errorf("expected no generation without templates, got %d", len(got))
	}
	if backend.saves != before {
		t.Error("expected no save when nothing was generated")
	}
}
