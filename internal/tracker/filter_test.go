package tracker_test

import (
	"testing"
	"time"

	"github.com/planify/planify/internal/tracker"
)

func timePtr(t time.Time) *time.Time { return &t }

// ---------------------------------------------------------------------------
// Filter: period membership
// ---------------------------------------------------------------------------

func Test_Filter_SplitsByDateWithinPeriod(t *testing.T) {
	t.Parallel()

	ref := date(2024, time.June, 12, 12, 0, 0, 0)

	objectives := []tracker.Objective{
		{ID: "in", Text: "due this week", Date: date(2024, time.June, 14, 0, 0, 0, 0)},
		{ID: "out", Text: "due next week", Date: date(2024, time.June, 20, 0, 0, 0, 0)},
	}
	tasks := []tracker.Task{
		{ID: "t-in", Date: date(2024, time.June, 9, 0, 0, 0, 0)},
		{ID: "t-out", Date: date(2024, time.June, 8, 23, 59, 59, 0)},
	}
	completedObjectives := []tracker.Objective{
		{ID: "co-in", CompletedDate: timePtr(date(2024, time.June, 10, 9, 0, 0, 0))},
		{ID: "co-out", CompletedDate: timePtr(date(2024, time.June, 16, 0, 0, 0, 0))},
		{ID: "co-nodate"},
	}
	completedTasks := []tracker.Task{
		{ID: "ct-in", CompletedDate: timePtr(date(2024, time.June, 15, 23, 59, 59, 999))},
	}

	split := tracker.Filter(tracker.PeriodWeekly, ref, objectives, tasks, completedObjectives, completedTasks)

	if len(split.ActiveObjectives) != 1 || split.ActiveObjectives[0].ID != "in" {
		t.Errorf("expected only the in-week objective, got %+v", split.ActiveObjectives)
	}
	if len(split.ActiveTasks) != 1 || split.ActiveTasks[0].ID != "t-in" {
		t.Errorf("expected only the in-week task, got %+v", split.ActiveTasks)
	}
	if len(split.CompletedObjectives) != 1 || split.CompletedObjectives[0].ID != "co-in" {
		t.Errorf("expected only the in-week completed objective, got %+v", split.CompletedObjectives)
	}
	// The week's last representable millisecond is included.
	if len(split.CompletedTasks) != 1 || split.CompletedTasks[0].ID != "ct-in" {
		t.Errorf("expected the boundary completed task included, got %+v", split.CompletedTasks)
	}
}

func Test_Filter_AllPeriodKeepsEverythingDated(t *testing.T) {
	t.Parallel()

	objectives := []tracker.Objective{
		{ID: "ancient", Date: date(1999, time.January, 1, 0, 0, 0, 0)},
		{ID: "future", Date: date(2099, time.December, 31, 0, 0, 0, 0)},
	}

	split := tracker.Filter(tracker.PeriodAll, date(2024, time.June, 12, 0, 0, 0, 0), objectives, nil, nil, nil)

	if len(split.ActiveObjectives) != 2 {
		t.Errorf("expected both objectives in the all period, got %d", len(split.ActiveObjectives))
	}
}

// ---------------------------------------------------------------------------
// Filter: display order
// ---------------------------------------------------------------------------

func Test_Filter_SortsActiveByPriorityThenCreation(t *testing.T) {
	t.Parallel()

	ref := date(2024, time.June, 12, 12, 0, 0, 0)
	day := date(2024, time.June, 12, 9, 0, 0, 0)

	tasks := []tracker.Task{
		{ID: "low", Priority: tracker.PriorityLow, Date: day, CreatedAt: date(2024, time.June, 1, 0, 0, 0, 0)},
		{ID: "high-late", Priority: tracker.PriorityHigh, Date: day, CreatedAt: date(2024, time.June, 3, 0, 0, 0, 0)},
		{ID: "medium", Priority: tracker.PriorityMedium, Date: day, CreatedAt: date(2024, time.June, 2, 0, 0, 0, 0)},
		{ID: "high-early", Priority: tracker.PriorityHigh, Date: day, CreatedAt: date(2024, time.June, 1, 0, 0, 0, 0)},
	}

	split := tracker.Filter(tracker.PeriodDaily, ref, nil, tasks, nil, nil)

	want := []string{"high-early", "high-late", "medium", "low"}
	if len(split.ActiveTasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(split.ActiveTasks))
	}
	for i, id := range want {
		if split.ActiveTasks[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, split.ActiveTasks[i].ID)
		}
	}
}

func Test_Filter_EqualKeysKeepStoredOrder(t *testing.T) {
	t.Parallel()

	ref := date(2024, time.June, 12, 12, 0, 0, 0)
	day := date(2024, time.June, 12, 9, 0, 0, 0)
	created := date(2024, time.June, 1, 0, 0, 0, 0)

	objectives := []tracker.Objective{
		{ID: "first", Priority: tracker.PriorityMedium, Date: day, CreatedAt: created},
		{ID: "second", Priority: tracker.PriorityMedium, Date: day, CreatedAt: created},
		{ID: "third", Priority: tracker.PriorityMedium, Date: day, CreatedAt: created},
	}

	split := tracker.Filter(tracker.PeriodDaily, ref, objectives, nil, nil, nil)

	for i, id := range []string{"first", "second", "third"} {
		if split.ActiveObjectives[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, split.ActiveObjectives[i].ID)
		}
	}
}

func Test_Filter_CompletedListsKeepStoredOrder(t *testing.T) {
	t.Parallel()

	ref := date(2024, time.June, 12, 12, 0, 0, 0)
	completed := timePtr(date(2024, time.June, 12, 9, 0, 0, 0))

	completedTasks := []tracker.Task{
		{ID: "a", Priority: tracker.PriorityLow, CompletedDate: completed},
		{ID: "b", Priority: tracker.PriorityHigh, CompletedDate: completed},
	}

	split := tracker.Filter(tracker.PeriodDaily, ref, nil, nil, nil, completedTasks)

	if split.CompletedTasks[0].ID != "a" || split.CompletedTasks[1].ID != "b" {
		t.Error("expected completed tasks in stored order, not priority order")
	}
}
