// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RoutineType discriminates the typed payload of a routine or template.
type RoutineType string

const (
	RoutineAthletics     RoutineType = "athletics"
	RoutineRunning       RoutineType = "running"
	RoutineGym           RoutineType = "gym"
	RoutineSteps         RoutineType = "steps"
	RoutineFootballMatch RoutineType = "football_match"
	RoutineYoYoTest      RoutineType = "yoyo_test"
)

// RoutineTypes lists every supported routine type.
var RoutineTypes = []RoutineType{
	RoutineAthletics,
	RoutineRunning,
	RoutineGym,
	RoutineSteps,
	RoutineFootballMatch,
	RoutineYoYoTest,
}

func (t RoutineType) Valid() bool {
	for _, known := range RoutineTypes {
		if t == known {
			return true
		}
	}
	return false
}

var (
	ErrUnknownRoutineType = errors.New("unknown routine_type")
	ErrPayloadMissing     = errors.New("payload for routine_type is missing")
	ErrPayloadMismatch    = errors.New("payload does not match routine_type")
)

// Payload is one variant of the routine tagged union.
type Payload interface {
	RoutineType() RoutineType
}

type AthleticsEvent struct {
	Name           string  `json:"name" validate:"required"`
	DistanceMeters float64 `json:"distance_meters,omitempty" validate:"gte=0"`
	TimeSeconds    float64 `json:"time_seconds,omitempty" validate:"gte=0"`
	Attempts       int     `json:"attempts,omitempty" validate:"gte=0"`
	Notes          string  `json:"notes,omitempty"`
}

type AthleticsData struct {
	DurationMinutes int              `json:"duration_minutes,omitempty" validate:"gte=0"`
	Events          []AthleticsEvent `json:"events" validate:"dive"`
}

type RunningInterval struct {
	DistanceMeters  float64 `json:"distance_meters" validate:"gte=0"`
	DurationSeconds int     `json:"duration_seconds" validate:"gte=0"`
	RestSeconds     int     `json:"rest_seconds,omitempty" validate:"gte=0"`
}

type RunningData struct {
	DistanceKm      float64           `json:"distance_km" validate:"gte=0"`
	DurationMinutes int               `json:"duration_minutes" validate:"gte=0"`
	AvgHeartRate    int               `json:"avg_heart_rate,omitempty" validate:"gte=0,lte=260"`
	ElevationGainM  float64           `json:"elevation_gain_m,omitempty"`
	Intervals       []RunningInterval `json:"intervals,omitempty" validate:"dive"`
}

type GymSet struct {
	Reps        int     `json:"reps" validate:"gte=0"`
	WeightKg    float64 `json:"weight_kg" validate:"gte=0"`
	RestSeconds int     `json:"rest_seconds,omitempty" validate:"gte=0"`
}

type GymExercise struct {
	ExerciseID string   `json:"exercise_id,omitempty"`
	Name       string   `json:"name" validate:"required"`
	Sets       []GymSet `json:"sets" validate:"dive"`
}

type GymData struct {
	DurationMinutes int           `json:"duration_minutes,omitempty" validate:"gte=0"`
	Exercises       []GymExercise `json:"exercises" validate:"dive"`
}

type StepsData struct {
	Steps      int     `json:"steps" validate:"gte=0"`
	DistanceKm float64 `json:"distance_km,omitempty" validate:"gte=0"`
	Calories   float64 `json:"calories,omitempty" validate:"gte=0"`
}

type FootballMatchData struct {
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0"`
	Position        string  `json:"position,omitempty"`
	Goals           int     `json:"goals,omitempty" validate:"gte=0"`
	Assists         int     `json:"assists,omitempty" validate:"gte=0"`
	DistanceKm      float64 `json:"distance_km,omitempty" validate:"gte=0"`
	Result          string  `json:"result,omitempty" validate:"omitempty,oneof=win draw loss"`
}

type YoYoTestData struct {
	Variant             string  `json:"variant" validate:"required,oneof=IR1 IR2"`
	Level               int     `json:"level" validate:"gte=0"`
	Shuttle             int     `json:"shuttle" validate:"gte=0"`
	TotalDistanceMeters float64 `json:"total_distance_meters" validate:"gte=0"`
}

func (AthleticsData) RoutineType() RoutineType     { return RoutineAthletics }
func (RunningData) RoutineType() RoutineType       { return RoutineRunning }
func (GymData) RoutineType() RoutineType           { return RoutineGym }
func (StepsData) RoutineType() RoutineType         { return RoutineSteps }
func (FootballMatchData) RoutineType() RoutineType { return RoutineFootballMatch }
func (YoYoTestData) RoutineType() RoutineType      { return RoutineYoYoTest }

// RoutineData carries the six typed payload fields of the wire format.
// Exactly one of them is set, and it must match the declared routine type.
type RoutineData struct {
	AthleticsData     *AthleticsData     `json:"athletics_data"`
	RunningData       *RunningData       `json:"running_data"`
	GymData           *GymData           `json:"gym_data"`
	StepsData         *StepsData         `json:"steps_data"`
	FootballMatchData *FootballMatchData `json:"football_match_data"`
	YoYoTestData      *YoYoTestData      `json:"yoyo_test_data"`
}

// Payload returns the populated variant, or nil when none is set.
// With more than one field set the first in declaration order wins;
// Check rejects that case.
func (d RoutineData) Payload() Payload {
	switch {
	case d.AthleticsData != nil:
		return *d.AthleticsData
	case d.RunningData != nil:
		return *d.RunningData
	case d.GymData != nil:
		return *d.GymData
	case d.StepsData != nil:
		return *d.StepsData
	case d.FootballMatchData != nil:
		return *d.FootballMatchData
	case d.YoYoTestData != nil:
		return *d.YoYoTestData
	}
	return nil
}

func (d RoutineData) populated() int {
	n := 0
	for _, set := range []bool{
		d.AthleticsData != nil,
		d.RunningData != nil,
		d.GymData != nil,
		d.StepsData != nil,
		d.FootballMatchData != nil,
		d.YoYoTestData != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Check verifies the payload shape against the declared type.
func (d RoutineData) Check(t RoutineType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRoutineType, t)
	}
	switch d.populated() {
	case 0:
		return fmt.Errorf("%w: %s_data", ErrPayloadMissing, t)
	case 1:
	default:
		return fmt.Errorf("%w: more than one payload field is set", ErrPayloadMismatch)
	}
	if got := d.Payload().RoutineType(); got != t {
		return fmt.Errorf("%w: %s_data given for %s", ErrPayloadMismatch, got, t)
	}
	return nil
}

// Only returns a copy keeping just the field that matches t.
func (d RoutineData) Only(t RoutineType) RoutineData {
	var out RoutineData
	switch t {
	case RoutineAthletics:
		out.AthleticsData = d.AthleticsData
	case RoutineRunning:
		out.RunningData = d.RunningData
	case RoutineGym:
		out.GymData = d.GymData
	case RoutineSteps:
		out.StepsData = d.StepsData
	case RoutineFootballMatch:
		out.FootballMatchData = d.FootballMatchData
	case RoutineYoYoTest:
		out.YoYoTestData = d.YoYoTestData
	}
	return out
}

// DataFor wraps a single payload variant into its wire field.
func DataFor(p Payload) RoutineData {
	var d RoutineData
	switch v := p.(type) {
	case AthleticsData:
		d.AthleticsData = &v
	case RunningData:
		d.RunningData = &v
	case GymData:
		d.GymData = &v
	case StepsData:
		d.StepsData = &v
	case FootballMatchData:
		d.FootballMatchData = &v
	case YoYoTestData:
		d.YoYoTestData = &v
	}
	return d
}

// EncodePayload serializes the populated variant for storage.
func EncodePayload(d RoutineData) ([]byte, error) {
	p := d.Payload()
	if p == nil {
		return nil, ErrPayloadMissing
	}
	return json.Marshal(p)
}

// DecodePayload restores a stored payload into the field selected by t.
func DecodePayload(t RoutineType, raw []byte) (RoutineData, error) {
	var (
		p   Payload
		err error
	)
	switch t {
	case RoutineAthletics:
		var v AthleticsData
		err = json.Unmarshal(raw, &v)
		p = v
	case RoutineRunning:
		var v RunningData
		err = json.Unmarshal(raw, &v)
		p = v
	case RoutineGym:
		var v GymData
		err = json.Unmarshal(raw, &v)
		p = v
	case RoutineSteps:
		var v StepsData
		err = json.Unmarshal(raw, &v)
		p = v
	case RoutineFootballMatch:
		var v FootballMatchData
		err = json.Unmarshal(raw, &v)
		p = v
	case RoutineYoYoTest:
		var v YoYoTestData
		err = json.Unmarshal(raw, &v)
		p = v
	default:
		return RoutineData{}, fmt.Errorf("%w: %q", ErrUnknownRoutineType, t)
	}
	if err != nil {
		return RoutineData{}, fmt.Errorf("decode %s payload: %w", t, err)
	}
	return DataFor(p), nil
}

// Routine is a dated instance of one workout type.
type Routine struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	RoutineDate string      `json:"routine_date"`
	RoutineType RoutineType `json:"routine_type"`
	RoutineData
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoutineTemplate is an undated blueprint that becomes a Routine when assigned.
type RoutineTemplate struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	IsFavorite  bool        `json:"is_favorite"`
	RoutineType RoutineType `json:"routine_type"`
	RoutineData
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
