// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Sleep phase kinds
const (
	PhaseLight = "light"
	PhaseDeep  = "deep"
	PhaseREM   = "rem"
	PhaseAwake = "awake"
)

// Domain types

type SleepPhase struct {
	Kind            string    `json:"kind" validate:"required,oneof=light deep rem awake"`
	Start           time.Time `json:"start" validate:"required"`
	End             time.Time `json:"end" validate:"required,gtfield=Start"`
	DurationMinutes float64   `json:"duration_minutes"`
}

type SleepRecord struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	SleepDate       string       `json:"sleep_date"`
	Bedtime         time.Time    `json:"bedtime"`
	WakeTime        time.Time    `json:"wake_time"`
	TotalSleepHours float64      `json:"total_sleep_hours"`
	Phases          []SleepPhase `json:"phases"`
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type MealProduct struct {
	ProductID     string  `json:"product_id,omitempty"`
	Name          string  `json:"name"`
	QuantityGrams float64 `json:"quantity_grams" validate:"gt=0"`
	Calories      float64 `json:"calories" validate:"gte=0"`
	Protein       float64 `json:"protein" validate:"gte=0"`
	Carbs         float64 `json:"carbs" validate:"gte=0"`
	Fat           float64 `json:"fat" validate:"gte=0"`
}

// MealSlot is either a free-text description or a list of products.
type MealSlot struct {
	Description string        `json:"description,omitempty"`
	Products    []MealProduct `json:"products,omitempty" validate:"dive"`
}

type Meal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MealDate    string    `json:"meal_date"`
	Breakfast   *MealSlot `json:"breakfast"`
	Lunch       *MealSlot `json:"lunch"`
	Snack       *MealSlot `json:"snack"`
	Dinner      *MealSlot `json:"dinner"`
	WaterLiters *float64  `json:"water_liters,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Slots returns the four meal slots in breakfast, lunch, snack, dinner order.
func (m *Meal) Slots() []*MealSlot {
	return []*MealSlot{m.Breakfast, m.Lunch, m.Snack, m.Dinner}
}

type Product struct {
	ID              string    `json:"id" yaml:"id"`
	UserID          *string   `json:"user_id,omitempty" yaml:"-"`
	Name            string    `json:"name" yaml:"name"`
	Brand           string    `json:"brand,omitempty" yaml:"brand"`
	CaloriesPer100g float64   `json:"calories_per_100g" yaml:"calories_per_100g"`
	ProteinPer100g  float64   `json:"protein_per_100g" yaml:"protein_per_100g"`
	CarbsPer100g    float64   `json:"carbs_per_100g" yaml:"carbs_per_100g"`
	FatPer100g      float64   `json:"fat_per_100g" yaml:"fat_per_100g"`
	IsDefault       bool      `json:"is_default" yaml:"-"`
	CreatedAt       time.Time `json:"created_at" yaml:"-"`
}

type Exercise struct {
	ID          string    `json:"id" yaml:"id"`
	UserID      *string   `json:"user_id,omitempty" yaml:"-"`
	Name        string    `json:"name" yaml:"name"`
	Category    string    `json:"category,omitempty" yaml:"category"`
	Description string    `json:"description,omitempty" yaml:"description"`
	IsDefault   bool      `json:"is_default" yaml:"-"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}

// Request types

// Optional records whether a JSON field was present at all, so that an
// explicit null can be told apart from an omitted field.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

type CreateSleepRequest struct {
	SleepDate       string       `json:"sleep_date" validate:"required,datekey"`
	Bedtime         time.Time    `json:"bedtime" validate:"required"`
	WakeTime        time.Time    `json:"wake_time" validate:"required,gtfield=Bedtime"`
	TotalSleepHours *float64     `json:"total_sleep_hours" validate:"omitempty,gte=0,lte=24"`
	Phases          []SleepPhase `json:"phases" validate:"dive"`
	Notes           string       `json:"notes"`
}

// UpdateSleepRequest changes only the fields that are present.
type UpdateSleepRequest struct {
	SleepDate       *string       `json:"sleep_date" validate:"omitempty,datekey"`
	Bedtime         *time.Time    `json:"bedtime"`
	WakeTime        *time.Time    `json:"wake_time"`
	TotalSleepHours *float64      `json:"total_sleep_hours" validate:"omitempty,gte=0,lte=24"`
	Phases          *[]SleepPhase `json:"phases" validate:"omitempty,dive"`
	Notes           *string       `json:"notes"`
}

type CreateMealRequest struct {
	MealDate    string    `json:"meal_date" validate:"required,datekey"`
	Breakfast   *MealSlot `json:"breakfast"`
	Lunch       *MealSlot `json:"lunch"`
	Snack       *MealSlot `json:"snack"`
	Dinner      *MealSlot `json:"dinner"`
	WaterLiters *float64  `json:"water_liters" validate:"omitempty,gte=0,lte=20"`
	Notes       string    `json:"notes"`
}

// UpdateMealRequest replaces a slot that is present and clears a slot sent
// as null. Absent slots are left alone.
type UpdateMealRequest struct {
	MealDate    *string            `json:"meal_date" validate:"omitempty,datekey"`
	Breakfast   Optional[MealSlot] `json:"breakfast"`
	Lunch       Optional[MealSlot] `json:"lunch"`
	Snack       Optional[MealSlot] `json:"snack"`
	Dinner      Optional[MealSlot] `json:"dinner"`
	WaterLiters Optional[float64]  `json:"water_liters"`
	Notes       *string            `json:"notes"`
}

type CreateRoutineRequest struct {
	RoutineDate string      `json:"routine_date" validate:"required,datekey"`
	RoutineType RoutineType `json:"routine_type" validate:"required,routinetype"`
	RoutineData
	Notes string `json:"notes"`
}

type UpdateRoutineRequest struct {
	RoutineDate *string      `json:"routine_date" validate:"omitempty,datekey"`
	RoutineType *RoutineType `json:"routine_type" validate:"omitempty,routinetype"`
	RoutineData
	Notes *string `json:"notes"`
}

type CreateTemplateRequest struct {
	Name        string      `json:"name" validate:"required,max=120"`
	Description string      `json:"description" validate:"max=1000"`
	IsFavorite  bool        `json:"is_favorite"`
	RoutineType RoutineType `json:"routine_type" validate:"required,routinetype"`
	RoutineData
	Notes string `json:"notes"`
}

type UpdateTemplateRequest struct {
	Name        *string      `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string      `json:"description" validate:"omitempty,max=1000"`
	IsFavorite  *bool        `json:"is_favorite"`
	RoutineType *RoutineType `json:"routine_type" validate:"omitempty,routinetype"`
	RoutineData
	Notes *string `json:"notes"`
}

type AssignTemplateRequest struct {
	Date      string `json:"date" validate:"required,datekey"`
	Overwrite bool   `json:"overwrite"`
}

type AssignRecurringRequest struct {
	StartDate string `json:"start_date" validate:"required,datekey"`
	EndDate   string `json:"end_date" validate:"required,datekey"`
	Weekdays  []int  `json:"weekdays" validate:"required,min=1,dive,gte=0,lte=6"`
	Overwrite bool   `json:"overwrite"`
}

type CreateProductRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Brand           string  `json:"brand" validate:"max=200"`
	CaloriesPer100g float64 `json:"calories_per_100g" validate:"gte=0,lte=900"`
	ProteinPer100g  float64 `json:"protein_per_100g" validate:"gte=0,lte=100"`
	CarbsPer100g    float64 `json:"carbs_per_100g" validate:"gte=0,lte=100"`
	FatPer100g      float64 `json:"fat_per_100g" validate:"gte=0,lte=100"`
}

type UpdateProductRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Brand           *string  `json:"brand" validate:"omitempty,max=200"`
	CaloriesPer100g *float64 `json:"calories_per_100g" validate:"omitempty,gte=0,lte=900"`
	ProteinPer100g  *float64 `json:"protein_per_100g" validate:"omitempty,gte=0,lte=100"`
	CarbsPer100g    *float64 `json:"carbs_per_100g" validate:"omitempty,gte=0,lte=100"`
	FatPer100g      *float64 `json:"fat_per_100g" validate:"omitempty,gte=0,lte=100"`
}

type CreateExerciseRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateExerciseRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// Response types

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
}

type DeleteResponse struct {
	Deleted string `json:"deleted"`
}

type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Error response

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
