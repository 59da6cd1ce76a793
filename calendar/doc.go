// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package calendar holds the date arithmetic shared by every record type.

# Date Keys

Sleep records, meals and routines are joined by a canonical YYYY-MM-DD key:

	key := calendar.Key(t)          // "2024-03-15"
	t, err := calendar.ParseKey(key)

Keys are timezone-naive. The year, month and day are read from the value as
given and parsed keys come back as UTC midnights.

# Month Grid

MonthGrid expands a month into whole Monday-first weeks, including the
leading and trailing days of the neighbouring months:

	days := calendar.MonthGrid(2024, time.March) // 2024-02-26 .. 2024-03-31

# Recurring Plans

Plan turns a weekday pattern (0=Monday .. 6=Sunday) and an inclusive range
into the concrete days it selects, in chronological order:

	mondays := calendar.Plan(start, end, []int{0})
*/
package calendar
