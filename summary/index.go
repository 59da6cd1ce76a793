// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"github.com/danielhkuo/fitlog/models"
)

// Day is everything recorded for one date key.
type Day struct {
	Date     string              `json:"date"`
	Sleep    *models.SleepRecord `json:"sleep"`
	Meal     *models.Meal        `json:"meal"`
	Routines []models.Routine    `json:"routines"`
}

// Empty reports whether nothing was recorded on the day.
func (d Day) Empty() bool {
	return d.Sleep == nil && d.Meal == nil && len(d.Routines) == 0
}

// Index joins the three collections by date key. It is immutable once built.
type Index struct {
	from, to string
	sleep    map[string]*models.SleepRecord
	meals    map[string]*models.Meal
	routines map[string][]models.Routine
}

// NewIndex builds lookups over the given records. When two sleep records or
// two meals share a key the later one in the slice wins.
func NewIndex(sleeps []models.SleepRecord, meals []models.Meal, routines []models.Routine) *Index {
	ix := &Index{
		sleep:    make(map[string]*models.SleepRecord, len(sleeps)),
		meals:    make(map[string]*models.Meal, len(meals)),
		routines: make(map[string][]models.Routine),
	}
	for i := range sleeps {
		ix.sleep[sleeps[i].SleepDate] = &sleeps[i]
	}
	for i := range meals {
		ix.meals[meals[i].MealDate] = &meals[i]
	}
	for _, r := range routines {
		ix.routines[r.RoutineDate] = append(ix.routines[r.RoutineDate], r)
	}
	return ix
}

// Day returns the aggregate for key. Routines is never nil.
func (ix *Index) Day(key string) Day {
	day := Day{Date: key, Routines: []models.Routine{}}
	if ix == nil {
		return day
	}
	day.Sleep = ix.sleep[key]
	day.Meal = ix.meals[key]
	if rs := ix.routines[key]; len(rs) > 0 {
		day.Routines = append(day.Routines, rs...)
	}
	return day
}

// Days returns the aggregate for each key in order.
func (ix *Index) Days(keys []string) []Day {
	days := make([]Day, 0, len(keys))
	for _, k := range keys {
		days = append(days, ix.Day(k))
	}
	return days
}

// Covers reports whether the index was loaded for a window containing
// [from, to]. Indexes built directly with NewIndex cover nothing.
func (ix *Index) Covers(from, to string) bool {
	if ix == nil || ix.from == "" {
		return false
	}
	return ix.from <= from && to <= ix.to
}
