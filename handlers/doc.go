// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the fitlog API.

# Handler Types

Each handler is a struct built from the store and the other long-lived
services it needs:

  - SleepHandler, MealHandler, RoutineHandler: dated records (CRUD)
  - TemplateHandler: routine templates and their assignment to dates
  - CatalogHandler: products and exercises, defaults plus own entries
  - DayHandler: day summaries, exports, the month calendar, critiques
  - SessionHandler: session validity

	sleepHandler := handlers.NewSleepHandler(store, cache, logger)

All handlers except SessionHandler expect the user ID that
middleware.RequireUser stores in the request context.

# Writes and the summary cache

Every successful write calls summary.Cache.Invalidate for the user so the
next calendar view reloads its window.

# Partial updates

PATCH requests change only the fields present in the body. Meal slots sent
as null are cleared. A routine or template may change type only when the
payload of the new type is sent with it.

# Status codes

	400 invalid JSON, failed validation (with per-field details)
	401 missing or invalid bearer token
	403 changing a default catalog entry
	404 record missing or owned by someone else
	409 a record already occupies the date (and type)
	502 AI critique unavailable
	500 anything else

# Template assignment

POST /api/templates/{id}/assign creates one routine and answers 201, or
409 when a routine of the template's type already exists on that date and
overwrite is false. POST /api/templates/{id}/assign-recurring always answers
200 with success, exists and error counts; its summary field is present only
when something did not get created.
*/
package handlers
