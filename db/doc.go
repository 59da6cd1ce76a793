// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and persistence for sleep, meals,
routines, templates and the product and exercise catalogs.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on postgres (lib/pq) and sqlite (modernc.org/sqlite).

# Tables

  - sleep_record: one per user per sleep_date
  - meal: one per user per meal_date, slots stored as JSON text
  - routine: one per user per (routine_date, routine_type), payload as JSON text
  - routine_template: undated routine blueprints
  - product: nutrition per 100g; user_id NULL marks a shared default
  - exercise: exercise catalog; user_id NULL marks a shared default

Dates are stored as YYYY-MM-DD text, so range filters compare strings.

# Store

Store wraps the connection. Every method takes the owning user ID and
never returns another user's rows. Driver errors are mapped to:

  - ErrNotFound: no row matched (including rows owned by someone else)
  - ErrConflict: a unique constraint was hit
  - ErrForbidden: a write targeted a shared default catalog row

# Defaults

SeedDefaults loads defaults.yaml (embedded) and inserts any missing
catalog rows.
*/
package db
