package calculator

import (
	"math"
	"time"
)

// Due-date helpers shared by the reliability scorer and the bills API.
// A bill stores only a day-of-month; these map it onto calendar dates,
// clamping to the last day of short months (due day 31 in February falls
// on Feb 28/29).

// clampDueDay bounds a raw due day to [1,31].
func clampDueDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 31 {
		return 31
	}
	return day
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month, loc *time.Location) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// DueDateInMonth returns the bill's due date in the month containing ref.
func DueDateInMonth(dueDay int, ref time.Time) time.Time {
	day := clampDueDay(dueDay)
	y, m, _ := ref.Date()
	if last := daysInMonth(y, m, ref.Location()); day > last {
		day = last
	}
	return time.Date(y, m, day, 0, 0, 0, 0, ref.Location())
}

// LastDueDate returns the most recent due date on or before ref.
func LastDueDate(dueDay int, ref time.Time) time.Time {
	due := DueDateInMonth(dueDay, ref)
	if !due.After(startOfDay(ref)) {
		return due
	}
	y, m, _ := ref.Date()
	// Anchor on the first of the month before stepping back so that
	// AddDate cannot normalize across month lengths.
	prev := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location()).AddDate(0, -1, 0)
	return DueDateInMonth(dueDay, prev)
}

// NextDueDate returns the first due date on or after ref, rolling over to
// the next month when this month's due day has already passed.
func NextDueDate(dueDay int, ref time.Time) time.Time {
	due := DueDateInMonth(dueDay, ref)
	if !due.Before(startOfDay(ref)) {
		return due
	}
	y, m, _ := ref.Date()
	next := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 1, 0)
	return DueDateInMonth(dueDay, next)
}

// daysPastDue returns the number of whole calendar days paid falls after
// due, never negative. Both instants are truncated to their calendar day
// first so a late-evening payment on the due day does not count as a day
// late.
func daysPastDue(due, paid time.Time) int {
	diff := startOfDay(paid).Sub(startOfDay(due))
	days := int(math.Round(diff.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
