package tracker_test

import (
	"testing"
	"time"

	"github.com/planify/planify/internal/tracker"
)

func date(y int, m time.Month, d, hh, mm, ss, ms int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, ms*int(time.Millisecond), time.UTC)
}

// ---------------------------------------------------------------------------
// ResolvePeriod
// ---------------------------------------------------------------------------

func Test_ResolvePeriod_Ranges(t *testing.T) {
	t.Parallel()

	// Wednesday mid-month; the week containing it runs Sunday the 9th
	// through Saturday the 15th.
	ref := date(2024, time.June, 12, 15, 30, 0, 0)

	tests := []struct {
		name  string
		kind  tracker.Period
		start time.Time
		end   time.Time
	}{
		{
			name:  "daily covers the calendar day",
			kind:  tracker.PeriodDaily,
			start: date(2024, time.June, 12, 0, 0, 0, 0),
			end:   date(2024, time.June, 12, 23, 59, 59, 999),
		},
		{
			name:  "weekly runs Sunday through Saturday",
			kind:  tracker.PeriodWeekly,
			start: date(2024, time.June, 9, 0, 0, 0, 0),
			end:   date(2024, time.June, 15, 23, 59, 59, 999),
		},
		{
			name:  "monthly covers the calendar month",
			kind:  tracker.PeriodMonthly,
			start: date(2024, time.June, 1, 0, 0, 0, 0),
			end:   date(2024, time.June, 30, 23, 59, 59, 999),
		},
		{
			name:  "yearly covers the calendar year",
			kind:  tracker.PeriodYearly,
			start: date(2024, time.January, 1, 0, 0, 0, 0),
			end:   date(2024, time.December, 31, 23, 59, 59, 999),
		},
		{
			name:  "all is effectively unbounded",
			kind:  tracker.PeriodAll,
			start: date(1970, time.January, 1, 0, 0, 0, 0),
			end:   date(9999, time.December, 31, 23, 59, 59, 999),
		},
		{
			name:  "unknown kind resolves like daily",
			kind:  tracker.Period("fortnightly"),
			start: date(2024, time.June, 12, 0, 0, 0, 0),
			end:   date(2024, time.June, 12, 23, 59, 59, 999),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := tracker.ResolvePeriod(tt.kind, ref)
			if !r.Start.Equal(tt.start) {
				t.Errorf("start: expected %v, got %v", tt.start, r.Start)
			}
			if !r.End.Equal(tt.end) {
				t.Errorf("end: expected %v, got %v", tt.end, r.End)
			}
		})
	}
}

func Test_ResolvePeriod_WeeklyOnSundayStartsSameDay(t *testing.T) {
	t.Parallel()

	sunday := date(2024, time.June, 9, 8, 0, 0, 0)
	r := tracker.ResolvePeriod(tracker.PeriodWeekly, sunday)

	if !r.Start.Equal(date(2024, time.June, 9, 0, 0, 0, 0)) {
		t.Errorf("expected week to start on the reference Sunday, got %v", r.Start)
	}
	if !r.End.Equal(date(2024, time.June, 15, 23, 59, 59, 999)) {
		t.Errorf("expected week to end the following Saturday, got %v", r.End)
	}
}

func Test_ResolvePeriod_WeeklyCrossesMonthBoundary(t *testing.T) {
	t.Parallel()

	// Saturday June 1st belongs to the week starting Sunday May 26th.
	r := tracker.ResolvePeriod(tracker.PeriodWeekly, date(2024, time.June, 1, 12, 0, 0, 0))

	if !r.Start.Equal(date(2024, time.May, 26, 0, 0, 0, 0)) {
		t.Errorf("expected start May 26, got %v", r.Start)
	}
	if !r.End.Equal(date(2024, time.June, 1, 23, 59, 59, 999)) {
		t.Errorf("expected end June 1, got %v", r.End)
	}
}

func Test_ResolvePeriod_MonthlyLeapFebruary(t *testing.T) {
	t.Parallel()

	r := tracker.ResolvePeriod(tracker.PeriodMonthly, date(2024, time.February, 10, 0, 0, 0, 0))

	if !r.End.Equal(date(2024, time.February, 29, 23, 59, 59, 999)) {
		t.Errorf("expected leap February to end on the 29th, got %v", r.End)
	}
}

// ---------------------------------------------------------------------------
// DateRange.Contains
// ---------------------------------------------------------------------------

func Test_DateRange_Contains_InclusiveBounds(t *testing.T) {
	t.Parallel()

	r := tracker.ResolvePeriod(tracker.PeriodDaily, date(2024, time.June, 12, 12, 0, 0, 0))

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"exactly at start", r.Start, true},
		{"exactly at end", r.End, true},
		{"one millisecond before start", r.Start.Add(-time.Millisecond), false},
		{"one millisecond after end", r.End.Add(time.Millisecond), false},
		{"middle of the day", date(2024, time.June, 12, 12, 0, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := r.Contains(tt.at); got != tt.want {
				t.Errorf("Contains(%v) = %v, expected %v", tt.at, got, tt.want)
			}
		})
	}
}
