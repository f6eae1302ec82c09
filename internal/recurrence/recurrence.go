// Package recurrence computes when a chore becomes available again after a
// confirmed completion, and the week/month boundaries used for point
// aggregation. Everything here is a pure function of its inputs.
package recurrence

import (
	"time"

	"github.com/perryvale/hearth/internal/model"
)

// NextAvailable returns the time at which a chore with the given frequency
// becomes available again after lastCompletedAt. A nil lastCompletedAt means
// the chore has never been confirmed and is immediately available, in which
// case NextAvailable returns nil.
//
// Monthly recurrence lands on the same day-of-month, clamped to the length
// of the target month (Jan 31 -> Feb 28/29).
func NextAvailable(freq model.Frequency, lastCompletedAt *time.Time) *time.Time {
	if lastCompletedAt == nil {
		return nil
	}
	last := *lastCompletedAt

	var next time.Time
	switch freq {
	case model.FrequencyDaily:
		next = last.Add(24 * time.Hour)
	case model.FrequencyWeekly:
		next = last.Add(7 * 24 * time.Hour)
	case model.FrequencyMonthly:
		next = addMonthClamped(last)
	default:
		// Unknown frequency: treat as immediately available again.
		next = last
	}
	return &next
}

// addMonthClamped advances t by one calendar month, keeping the day-of-month
// where possible. time.AddDate normalizes overflow (Jan 31 + 1 month =
// Mar 2/3), so the day is clamped explicitly.
func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekStart returns the Monday of t's week at midnight, the aggregation key
// for weekly points.
func WeekStart(t time.Time) time.Time {
	days := (int(t.Weekday()) + 6) % 7 // Monday = 0
	d := t.AddDate(0, 0, -days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// WeekEnd returns the Sunday of t's week at midnight.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, -1)
	return start, end
}

// WeeklyOccurrences returns how many times a chore with the given frequency
// is expected to come due within a single week. Monthly chores are counted
// separately, once per month.
func WeeklyOccurrences(freq model.Frequency) int {
	switch freq {
	case model.FrequencyDaily:
		return 7
	case model.FrequencyWeekly:
		return 1
	default:
		return 0
	}
}
