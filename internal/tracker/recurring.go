package tracker

import "time"

// dueOn reports whether a recurring template should generate a task on the
// given weekday. A daily recurrence fires every day; otherwise the
// template's recurring-day set decides.
func dueOn(t *Task, day time.Weekday) bool {
	if t.Recurrence == RecurrenceDaily {
		return true
	}
	for _, d := range t.RecurringDays {
		if d == day {
			return true
		}
	}
	return false
}

// isRecurringTemplate reports whether a task acts as a recurring template
// rather than a one-off action.
func isRecurringTemplate(t *Task) bool {
	return (t.Recurrence != "" && t.Recurrence != RecurrenceNone) || len(t.RecurringDays) > 0
}

// sameCalendarDay reports whether a and b fall on the same local calendar day.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// GenerateRecurringTasks runs the daily sweep: for every recurring template
// due on today's weekday it synthesizes a one-off active task dated now,
// unless an active task with the same text already exists for today. Each
// generated task is logged with a recurring_generated history entry and
// inherits the template's parent objective link.
//
// The sweep is best-effort: it runs approximately once per day of session
// uptime and missed occurrences are not backfilled.
func (s *Store) GenerateRecurringTasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	today := now.Weekday()

	// Collect templates first; generation appends to the same slice.
	templates := make([]Task, 0)
	for i := range s.snap.Tasks {
		t := &s.snap.Tasks[i]
		if isRecurringTemplate(t) && dueOn(t, today) {
			templates = append(templates, *t)
		}
	}

	generated := make([]Task, 0)
	for _, tpl := range templates {
		if s.hasActiveTaskForDay(tpl.Text, now) {
			continue
		}

		task := tpl
		task.ID = s.newID()
		task.CreatedAt = now
		task.Date = now
		task.Recurrence = RecurrenceNone
		task.RecurringDays = nil
		task.NoteIDs = nil
		task.Tags = append([]string(nil), tpl.Tags...)

		s.snap.Tasks = append(s.snap.Tasks, task)
		if task.ObjectiveID != "" {
			s.linkTask(task.ObjectiveID, task.ID)
		}
		s.appendHistory(ActionRecurringGenerated, KindTask, task)
		generated = append(generated, task)
	}

	if len(generated) > 0 {
		s.save()
	}
	return generated
}

// hasActiveTaskForDay reports whether a non-template active task with the
// given text is already dated on the same calendar day as ref.
func (s *Store) hasActiveTaskForDay(text string, ref time.Time) bool {
	for i := range s.snap.Tasks {
		t := &s.snap.Tasks[i]
		if !isRecurringTemplate(t) && t.Text == text && sameCalendarDay(t.Date, ref) {
			return true
		}
	}
	return false
}
