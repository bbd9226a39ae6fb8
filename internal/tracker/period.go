package tracker

import "time"

// Period is one of the calendar buckets used to slice items by date for
// summaries and calendar display.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodAll     Period = "all"
)

// DateRange is a closed-closed interval: both Start and End are included.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range, inclusive on both
// ends. An item dated exactly at End is included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// endOfDay returns the last representable millisecond of ref's calendar day.
func endOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), loc)
}

// ResolvePeriod maps a period kind and a reference date to the inclusive
// [start, end] range it covers, in the reference date's location.
//
// Weeks start on Sunday. The "all" period is effectively unbounded, running
// from 1970-01-01 to 9999-12-31. An unknown kind resolves like "daily".
func ResolvePeriod(kind Period, ref time.Time) DateRange {
	loc := ref.Location()
	year, month, day := ref.Date()

	switch kind {
	case PeriodWeekly:
		sunday := ref.AddDate(0, 0, -int(ref.Weekday()))
		sy, sm, sd := sunday.Date()
		saturday := sunday.AddDate(0, 0, 6)
		ey, em, ed := saturday.Date()
		return DateRange{
			Start: time.Date(sy, sm, sd, 0, 0, 0, 0, loc),
			End:   endOfDay(ey, em, ed, loc),
		}
	case PeriodMonthly:
		return DateRange{
			Start: time.Date(year, month, 1, 0, 0, 0, 0, loc),
			// Day 0 of the following month is the last day of this one.
			End: endOfDay(year, month+1, 0, loc),
		}
	case PeriodYearly:
		return DateRange{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
			End:   endOfDay(year, time.December, 31, loc),
		}
	case PeriodAll:
		return DateRange{
			Start: time.Date(1970, time.January, 1, 0, 0, 0, 0, loc),
			End:   endOfDay(9999, time.December, 31, loc),
		}
	default:
		return DateRange{
			Start: time.Date(year, month, day, 0, 0, 0, 0, loc),
			End:   endOfDay(year, month, day, loc),
		}
	}
}
