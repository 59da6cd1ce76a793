// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"sort"
	"time"
)

// SleepHours is the time between bedtime and wake time, in hours rounded to
// two decimals.
func SleepHours(bedtime, wake time.Time) float64 {
	if !wake.After(bedtime) {
		return 0
	}
	return round2(wake.Sub(bedtime).Hours())
}

// NormalizePhases orders phases by start time and fills in missing durations.
func NormalizePhases(phases []SleepPhase) []SleepPhase {
	out := make([]SleepPhase, len(phases))
	copy(out, phases)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	for i := range out {
		if out[i].DurationMinutes == 0 && out[i].End.After(out[i].Start) {
			out[i].DurationMinutes = round2(out[i].End.Sub(out[i].Start).Minutes())
		}
	}
	return out
}

// PhaseMinutes totals the minutes spent in each phase kind.
func PhaseMinutes(phases []SleepPhase) map[string]float64 {
	totals := make(map[string]float64)
	for _, p := range phases {
		totals[p.Kind] += p.DurationMinutes
	}
	return totals
}
