// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

WithLogging is chi-compatible middleware:

	r.Use(middleware.WithLogging(logger))

Logs request start (method, path, remote, request_id) at debug level and
completion (status, bytes, duration) at info level.

# Authentication

RequireUser verifies the bearer token and stores the user ID in the
request context:

	r.Use(middleware.RequireUser(verifier))
	// in a handler
	userID := middleware.UserID(r.Context())

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ValidationResponse(w, "Validation failed", details)

Parse JSON request bodies:

	var req models.CreateSleepRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
