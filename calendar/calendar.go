// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calendar

import (
	"errors"
	"fmt"
	"time"
)

// KeyLayout is the canonical date key format used to join records by day.
const KeyLayout = "2006-01-02"

var ErrInvalidKey = errors.New("date must be formatted as YYYY-MM-DD")

// Key returns the canonical YYYY-MM-DD key for t.
// The calendar fields are read from t as given; no timezone conversion happens.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a canonical date key into a UTC midnight.
func ParseKey(s string) (time.Time, error) {
	if len(s) != len(KeyLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	t, err := time.Parse(KeyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return t, nil
}

// ValidKey reports whether s is a well formed, real calendar date.
func ValidKey(s string) bool {
	_, err := ParseKey(s)
	return err == nil
}

// Today returns the key for the current local day.
func Today() string {
	return Key(time.Now())
}

// Day truncates t to a UTC midnight carrying the same calendar fields.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MondayIndex maps Monday to 0 through Sunday to 6.
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MonthGrid returns every day from the Monday on or before the first of the
// month through the Sunday on or after its last day.
func MonthGrid(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	// time.Weekday counts Sunday as 0
	start := first.AddDate(0, 0, -((int(first.Weekday()) + 6) % 7))
	end := last.AddDate(0, 0, (7-int(last.Weekday()))%7)

	return Range(start, end)
}

// Range returns each day in [from, to], or nil when from is after to.
func Range(from, to time.Time) []time.Time {
	from, to = Day(from), Day(to)
	if from.After(to) {
		return nil
	}
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Plan expands a weekly pattern over [start, end]. Weekdays use the
// Monday=0 .. Sunday=6 convention; values outside that range never match.
// An inverted range or an empty pattern yields an empty plan.
func Plan(start, end time.Time, weekdays []int) []time.Time {
	selected := make(map[int]bool, len(weekdays))
	for _, wd := range weekdays {
		if wd >= 0 && wd <= 6 {
			selected[wd] = true
		}
	}
	if len(selected) == 0 {
		return []time.Time{}
	}

	planned := []time.Time{}
	for _, d := range Range(start, end) {
		if selected[MondayIndex(d)] {
			planned = append(planned, d)
		}
	}
	return planned
}

// Keys converts days into their canonical keys.
func Keys(days []time.Time) []string {
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = Key(d)
	}
	return keys
}
