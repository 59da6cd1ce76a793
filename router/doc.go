// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the fitlog API.

# Route Registration

NewRouter builds a chi router over the shared services:

	r := router.NewRouter(cfg, router.Services{
		Store:    store,
		Executor: executor,
		Critic:   critic,
		Logger:   logger,
	})

Every request gets a request ID, the real client IP, structured request
logging, panic recovery and CORS limited to cfg.AllowedOrigins.

# Endpoints

Public:

	GET /health
	GET /api/session - {authenticated, user_id}

Everything else under /api requires "Authorization: Bearer <jwt>":

	/api/sleep, /api/meals, /api/routines, /api/templates
	    GET / (list), POST / (create)
	    GET, PATCH, DELETE /{id}
	POST /api/templates/{id}/assign
	POST /api/templates/{id}/assign-recurring
	/api/products, /api/exercises
	    GET / (defaults plus own, ?q= search), POST /
	    PATCH, DELETE /{id} (own entries only)
	GET  /api/days/{date}
	GET  /api/days/{date}/export
	POST /api/days/{date}/critique
	GET  /api/export?from=&to=
	GET  /api/calendar?year=&month=
*/
package router
