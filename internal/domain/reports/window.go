// Package reports computes the dashboard summary over fixed time
// windows.
package reports

import (
	"time"
)

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns the calendar day containing ref.
func Today(ref time.Time) Window {
	from := startOfDay(ref)
	return Window{From: from, To: from.AddDate(0, 0, 1)}
}

// Yesterday returns the calendar day before the one containing ref.
func Yesterday(ref time.Time) Window {
	today := startOfDay(ref)
	return Window{From: today.AddDate(0, 0, -1), To: today}
}

// ThisWeek returns the Monday-started week containing ref.
func ThisWeek(ref time.Time) Window {
	day := startOfDay(ref)
	weekday := int(day.Weekday())
	// time.Weekday has Sunday = 0; shift so Monday = 0
	offset := (weekday + 6) % 7
	from := day.AddDate(0, 0, -offset)
	return Window{From: from, To: from.AddDate(0, 0, 7)}
}

// ThisMonth returns the calendar month containing ref.
func ThisMonth(ref time.Time) Window {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return Window{From: from, To: from.AddDate(0, 1, 0)}
}

// LastMonth returns the calendar month before the one containing ref.
func LastMonth(ref time.Time) Window {
	thisFrom := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return Window{From: thisFrom.AddDate(0, -1, 0), To: thisFrom}
}

// AllTime returns an effectively unbounded window ending after ref.
func AllTime(ref time.Time) Window {
	return Window{
		From: time.Time{},
		To:   ref.AddDate(100, 0, 0),
	}
}

// Windows returns every dashboard window keyed by name.
func Windows(ref time.Time) map[string]Window {
	return map[string]Window{
		"today":     Today(ref),
		"yesterday": Yesterday(ref),
		"thisWeek":  ThisWeek(ref),
		"thisMonth": ThisMonth(ref),
		"lastMonth": LastMonth(ref),
		"allTime":   AllTime(ref),
	}
}
