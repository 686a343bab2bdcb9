package domain

import "time"

// SpendWindow is a closed calendar-aligned date interval used for spend
// aggregation. Start is the first instant of the window's first day and End
// the last instant of its last day, so a date d is inside the window iff
// Start <= d <= End.
type SpendWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window (inclusive).
func (w SpendWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WeekWindowOf returns the Sunday-through-Saturday week containing date.
func WeekWindowOf(date time.Time) SpendWindow {
	day := truncateToDay(date)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	end := endOfDay(start.AddDate(0, 0, 6))
	return SpendWindow{Start: start, End: end}
}

// MonthWindowOf returns the first-through-last calendar day of the month containing date.
func MonthWindowOf(date time.Time) SpendWindow {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	end := endOfDay(start.AddDate(0, 1, -1))
	return SpendWindow{Start: start, End: end}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
