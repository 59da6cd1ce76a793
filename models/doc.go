// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - SleepRecord, SleepPhase: one night per user and date
  - Meal, MealSlot, MealProduct: one meal record per user and date
  - Routine, RoutineData: one routine per user, date and type
  - RoutineTemplate: a reusable routine without a date
  - Product, Exercise: catalog entries, seeded defaults are read-only

# Routine Payloads

RoutineData holds one optional payload per routine type. A stored routine
carries exactly the payload matching its type; Check enforces that and
Only drops the rest.

	athletics       AthleticsData
	running         RunningData
	gym             GymData
	steps           StepsData
	football_match  FootballMatchData
	yoyo_test       YoYoTestData

# Request Types

Create requests are validated with Validate (go-playground/validator) and
the custom tags datekey and routinetype. Update requests use pointers, or
Optional where an explicit null must clear a field.

# Response Types

  - ListResponse: items, limit, offset
  - DeleteResponse: deleted
  - SessionResponse: authenticated, user_id
  - ErrorResponse: error, message, details
*/
package models
