// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"time"

	"github.com/danielhkuo/fitlog/models"
)

// Export is the portable JSON document for one day. Absent sections are
// null rather than omitted.
type Export struct {
	Date     string          `json:"date"`
	Sleep    *ExportSleep    `json:"sleep"`
	Meals    *ExportMeals    `json:"meals"`
	Routines []ExportRoutine `json:"routines"`
}

type ExportSleep struct {
	Bedtime         time.Time           `json:"bedtime"`
	WakeTime        time.Time           `json:"wake_time"`
	TotalSleepHours float64             `json:"total_sleep_hours"`
	Phases          []models.SleepPhase `json:"phases"`
	PhaseMinutes    map[string]float64  `json:"phase_minutes"`
	Notes           string              `json:"notes"`
}

type ExportMeals struct {
	Breakfast   *models.MealSlot `json:"breakfast"`
	Lunch       *models.MealSlot `json:"lunch"`
	Snack       *models.MealSlot `json:"snack"`
	Dinner      *models.MealSlot `json:"dinner"`
	WaterLiters *float64         `json:"water_liters"`
	Notes       string           `json:"notes"`
	Totals      models.Nutrition `json:"totals"`
}

type ExportRoutine struct {
	Type  models.RoutineType `json:"type"`
	Notes string             `json:"notes"`
	Data  models.Payload     `json:"data"`
}

// BuildExport converts an aggregated day into its export document.
func BuildExport(day Day) Export {
	doc := Export{Date: day.Date, Routines: make([]ExportRoutine, 0, len(day.Routines))}

	if s := day.Sleep; s != nil {
		phases := s.Phases
		if phases == nil {
			phases = []models.SleepPhase{}
		}
		doc.Sleep = &ExportSleep{
			Bedtime:         s.Bedtime,
			WakeTime:        s.WakeTime,
			TotalSleepHours: s.TotalSleepHours,
			Phases:          phases,
			PhaseMinutes:    models.PhaseMinutes(phases),
			Notes:           s.Notes,
		}
	}

	if m := day.Meal; m != nil {
		doc.Meals = &ExportMeals{
			Breakfast:   m.Breakfast,
			Lunch:       m.Lunch,
			Snack:       m.Snack,
			Dinner:      m.Dinner,
			WaterLiters: m.WaterLiters,
			Notes:       m.Notes,
			Totals:      m.Totals(),
		}
	}

	for _, r := range day.Routines {
		doc.Routines = append(doc.Routines, ExportRoutine{
			Type:  r.RoutineType,
			Notes: r.Notes,
			Data:  r.RoutineData.Only(r.RoutineType).Payload(),
		})
	}

	return doc
}

// Empty reports whether the document holds no records.
func (e Export) Empty() bool {
	return e.Sleep == nil && e.Meals == nil && len(e.Routines) == 0
}

// ExportRange builds one document per day in keys, skipping empty days.
func ExportRange(ix *Index, keys []string) []Export {
	docs := []Export{}
	for _, k := range keys {
		if doc := BuildExport(ix.Day(k)); !doc.Empty() {
			docs = append(docs, doc)
		}
	}
	return docs
}
