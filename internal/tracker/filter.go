package tracker

import (
	"sort"
	"time"
)

// ViewSplit is the four-way partition of items for a selected period,
// consumed by the pending list, calendar tile counts, and summaries.
type ViewSplit struct {
	ActiveObjectives    []Objective `json:"activeObjectives"`
	ActiveTasks         []Task      `json:"activeTasks"`
	CompletedObjectives []Objective `json:"completedObjectives"`
	CompletedTasks      []Task      `json:"completedTasks"`
}

// Filter partitions the given collections by the period containing ref.
// Active items are matched on their target date, completed items on their
// completion date.
//
// Active lists come back in display order: descending priority, then
// ascending creation time, with the stable sort preserving stored order for
// equal keys. Completed lists keep their stored order.
func Filter(kind Period, ref time.Time, objectives []Objective, tasks []Task, completedObjectives []Objective, completedTasks []Task) ViewSplit {
	r := ResolvePeriod(kind, ref)

	split := ViewSplit{
		ActiveObjectives:    make([]Objective, 0),
		ActiveTasks:         make([]Task, 0),
		CompletedObjectives: make([]Objective, 0),
		CompletedTasks:      make([]Task, 0),
	}

	for _, o := range objectives {
		if r.Contains(o.Date) {
			split.ActiveObjectives = append(split.ActiveObjectives, o)
		}
	}
	for _, t := range tasks {
		if r.Contains(t.Date) {
			split.ActiveTasks = append(split.ActiveTasks, t)
		}
	}
	for _, o := range completedObjectives {
		if o.CompletedDate != nil && r.Contains(*o.CompletedDate) {
			split.CompletedObjectives = append(split.CompletedObjectives, o)
		}
	}
	for _, t := range completedTasks {
		if t.CompletedDate != nil && r.Contains(*t.CompletedDate) {
			split.CompletedTasks = append(split.CompletedTasks, t)
		}
	}

	sortObjectivesForDisplay(split.ActiveObjectives)
	sortTasksForDisplay(split.ActiveTasks)

	return split
}

func sortObjectivesForDisplay(objs []Objective) {
	sort.SliceStable(objs, func(i, j int) bool {
		if d := objs[i].Priority.rank() - objs[j].Priority.rank(); d != 0 {
			return d > 0
		}
		return objs[i].CreatedAt.Before(objs[j].CreatedAt)
	})
}

func sortTasksForDisplay(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if d := tasks[i].Priority.rank() - tasks[j].Priority.rank(); d != 0 {
			return d > 0
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}
