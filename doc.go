// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the fitlog command.

fitlog is a personal log of sleep, meals and training. Every record is keyed
by a calendar date (YYYY-MM-DD) and owned by the user named in the bearer
token. Routine templates can be stamped onto many dates at once, and each
day can be exported as JSON or sent to Gemini for a short critique.

# Commands

	fitlog serve     run the HTTP API
	fitlog migrate   create the schema and seed the default catalog
	fitlog export    write a user's days as a JSON array

# Starting the Server

Configuration comes from flags, then environment variables, then an
optional .env file:

	DATABASE_URL=fitlog.db JWT_SECRET=... fitlog serve

Or with flags:

	fitlog serve -p 8080 -d "postgres://..." --jwt-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): HMAC secret for bearer tokens (serve only)

Optional settings:

  - PORT (-p): server port (default: 8080)
  - DATABASE_TYPE (-t): sqlite or postgres (inferred from the URL)
  - GEMINI_API_KEY (--genai-api-key): enables critiques
  - GENAI_MODEL (--genai-model): default gemini-2.0-flash
  - ASSIGN_DELAY (--assign-delay): pause between assignment writes (default: 50ms)
  - APP_ENV (--env): development or production logging
  - ALLOWED_ORIGINS (--allowed-origins): CORS origins

# Architecture

  - calendar: date keys, Monday-first month grids, recurring plans
  - models: request/response and domain types, validation
  - db: schema, Store, seeded catalog
  - summary: per-day aggregation, month view, export documents
  - assign: serialized template assignment
  - critique: Gemini prompt and response parsing
  - handlers, router, middleware, auth: the HTTP surface
  - cliparse, logging: configuration and zap setup

See package documentation for each component.
*/
package main
