// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to types both postgres and sqlite understand.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Sleep records, one per user per day
CREATE TABLE IF NOT EXISTS sleep_record (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    sleep_date TEXT NOT NULL,
    bedtime TIMESTAMP NOT NULL,
    wake_time TIMESTAMP NOT NULL,
    total_sleep_hours DOUBLE PRECISION NOT NULL,
    phases TEXT NOT NULL DEFAULT '[]',
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, sleep_date)
);

CREATE INDEX IF NOT EXISTS idx_sleep_record_user_date ON sleep_record(user_id, sleep_date);

-- Meals, one per user per day; slots hold JSON or NULL
CREATE TABLE IF NOT EXISTS meal (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    meal_date TEXT NOT NULL,
    breakfast TEXT,
    lunch TEXT,
    snack TEXT,
    dinner TEXT,
    water_liters DOUBLE PRECISION,
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, meal_date)
);

CREATE INDEX IF NOT EXISTS idx_meal_user_date ON meal(user_id, meal_date);

-- Routines, at most one per type per user per day
CREATE TABLE IF NOT EXISTS routine (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    routine_date TEXT NOT NULL,
    routine_type TEXT NOT NULL CHECK (routine_type IN ('athletics', 'running', 'gym', 'steps', 'football_match', 'yoyo_test')),
    payload TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, routine_date, routine_type)
);

CREATE INDEX IF NOT EXISTS idx_routine_user_date ON routine(user_id, routine_date);

-- Routine templates
CREATE TABLE IF NOT EXISTS routine_template (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
    routine_type TEXT NOT NULL CHECK (routine_type IN ('athletics', 'running', 'gym', 'steps', 'football_match', 'yoyo_test')),
    payload TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_routine_template_user ON routine_template(user_id);

-- Product catalog; user_id NULL marks a shared default
CREATE TABLE IF NOT EXISTS product (
    id TEXT PRIMARY KEY,
    user_id TEXT,
    name TEXT NOT NULL,
    brand TEXT NOT NULL DEFAULT '',
    calories_per_100g DOUBLE PRECISION NOT NULL DEFAULT 0,
    protein_per_100g DOUBLE PRECISION NOT NULL DEFAULT 0,
    carbs_per_100g DOUBLE PRECISION NOT NULL DEFAULT 0,
    fat_per_100g DOUBLE PRECISION NOT NULL DEFAULT 0,
    is_default BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_product_user ON product(user_id);

-- Exercise catalog; user_id NULL marks a shared default
CREATE TABLE IF NOT EXISTS exercise (
    id TEXT PRIMARY KEY,
    user_id TEXT,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    is_default BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exercise_user ON exercise(user_id);
`
