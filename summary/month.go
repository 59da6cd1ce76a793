// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"time"

	"github.com/danielhkuo/fitlog/calendar"
	"github.com/danielhkuo/fitlog/models"
)

// Cell is one square of the month calendar.
type Cell struct {
	Date         string               `json:"date"`
	InMonth      bool                 `json:"in_month"`
	HasSleep     bool                 `json:"has_sleep"`
	HasMeal      bool                 `json:"has_meal"`
	RoutineTypes []models.RoutineType `json:"routine_types"`
	SleepHours   *float64             `json:"sleep_hours,omitempty"`
}

type MonthView struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	From  string `json:"from"`
	To    string `json:"to"`
	Cells []Cell `json:"cells"`
}

// MonthWindow returns the first and last keys of the Monday-first grid.
func MonthWindow(year int, month time.Month) (from, to string) {
	grid := calendar.MonthGrid(year, month)
	return calendar.Key(grid[0]), calendar.Key(grid[len(grid)-1])
}

// Month lays ix out on the Monday-first grid for year and month.
func Month(ix *Index, year int, month time.Month) MonthView {
	grid := calendar.MonthGrid(year, month)
	view := MonthView{
		Year:  year,
		Month: int(month),
		From:  calendar.Key(grid[0]),
		To:    calendar.Key(grid[len(grid)-1]),
		Cells: make([]Cell, 0, len(grid)),
	}

	for _, d := range grid {
		day := ix.Day(calendar.Key(d))
		cell := Cell{
			Date:         day.Date,
			InMonth:      d.Month() == month,
			HasSleep:     day.Sleep != nil,
			HasMeal:      day.Meal != nil,
			RoutineTypes: make([]models.RoutineType, 0, len(day.Routines)),
		}
		if day.Sleep != nil {
			hours := day.Sleep.TotalSleepHours
			cell.SleepHours = &hours
		}
		for _, r := range day.Routines {
			cell.RoutineTypes = append(cell.RoutineTypes, r.RoutineType)
		}
		view.Cells = append(view.Cells, cell)
	}

	return view
}
