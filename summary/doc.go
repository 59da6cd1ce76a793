// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package summary joins sleep, meal and routine records by date key and
// renders the day, month calendar and export views built on that join.
package summary
