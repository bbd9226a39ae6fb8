package tracker

import "time"

// Summary is the completed/pending breakdown backing the period summary
// chart: everything completed in the period, plus the active items that are
// not yet at 100%.
type Summary struct {
	CompletedObjectives []Objective `json:"completedObjectives"`
	CompletedTasks      []Task      `json:"completedTasks"`
	PendingObjectives   []Objective `json:"pendingObjectives"`
	PendingTasks        []Task      `json:"pendingTasks"`
}

// Summarize computes the summary for the period containing ref.
func (s *Store) Summarize(kind Period, ref time.Time) Summary {
	split := s.View(kind, ref)

	sum := Summary{
		CompletedObjectives: split.CompletedObjectives,
		CompletedTasks:      split.CompletedTasks,
		PendingObjectives:   make([]Objective, 0),
		PendingTasks:        make([]Task, 0),
	}
	for _, o := range split.ActiveObjectives {
		if o.Progress < 100 {
			sum.PendingObjectives = append(sum.PendingObjectives, o)
		}
	}
	for _, t := range split.ActiveTasks {
		if t.Percentage < 100 {
			sum.PendingTasks = append(sum.PendingTasks, t)
		}
	}
	return sum
}

// TagStats counts completed objectives and tasks per tag.
func (s *Store) TagStats() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, o := range s.snap.CompletedObjectives {
		for _, tag := range o.Tags {
			counts[tag]++
		}
	}
	for _, t := range s.snap.CompletedTasks {
		for _, tag := range t.Tags {
			counts[tag]++
		}
	}
	return counts
}

// MonthlyStats counts completed objectives and tasks per calendar month of
// their completion date, keyed like "Jan 2024".
func (s *Store) MonthlyStats() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, o := range s.snap.CompletedObjectives {
		if o.CompletedDate != nil {
			counts[o.CompletedDate.Format("Jan 2006")]++
		}
	}
	for _, t := range s.snap.CompletedTasks {
		if t.CompletedDate != nil {
			counts[t.CompletedDate.Format("Jan 2006")]++
		}
	}
	return counts
}

// Achievement is a fixed milestone derived from completion counts.
type Achievement struct {
	Name     string `json:"name"`
	Achieved bool   `json:"achieved"`
}

// Achievements evaluates the fixed milestone set against the completed
// collections.
func (s *Store) Achievements() []Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	objectives := len(s.snap.CompletedObjectives)
	tasks := len(s.snap.CompletedTasks)

	return []Achievement{
		{Name: "First objective completed", Achieved: objectives >= 1},
		{Name: "5 tasks completed", Achieved: tasks >= 5},
		{Name: "10 items completed", Achieved: objectives+tasks >= 10},
	}
}
