// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/danielhkuo/fitlog/apperror"
	"github.com/danielhkuo/fitlog/calendar"
	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/middleware"
	"github.com/danielhkuo/fitlog/models"
)

// decodeRequest parses the JSON body into req and runs its validation
// rules. It writes the 400 response itself and reports whether to go on.
func decodeRequest(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := middleware.ParseJSONBody(r, req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	if err := models.Validate(req); err != nil {
		middleware.ValidationResponse(w, "Validation failed", apperror.ValidationDetails(err))
		return false
	}
	return true
}

// storeError writes the response for a failed store call. resource names
// the record in 404 messages; conflict is the 409 message.
func storeError(w http.ResponseWriter, logger *zap.Logger, err error, resource, conflict string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, db.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, conflict)
	case errors.Is(err, db.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Default catalog entries cannot be changed")
	default:
		logger.Error("request failed", zap.String("resource", resource), zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// payloadError writes a 400 for a routine payload that does not fit its type.
func payloadError(w http.ResponseWriter, t models.RoutineType, err error) {
	middleware.ValidationResponse(w, "Invalid routine payload", map[string]string{
		string(t) + "_data": err.Error(),
	})
}

// listOptions reads the shared list query parameters.
func listOptions(r *http.Request) (db.ListOptions, map[string]string) {
	q := r.URL.Query()
	opts := db.ListOptions{
		From:        q.Get("from"),
		To:          q.Get("to"),
		RoutineType: q.Get("type"),
		Query:       q.Get("q"),
	}
	details := map[string]string{}

	for _, p := range []struct {
		name  string
		value string
	}{{"from", opts.From}, {"to", opts.To}} {
		if p.value != "" && !calendar.ValidKey(p.value) {
			details[p.name] = "must be a date formatted as YYYY-MM-DD"
		}
	}
	if opts.From != "" && opts.To != "" && opts.To < opts.From {
		details["to"] = "must not be before from"
	}
	if opts.RoutineType != "" && !models.RoutineType(opts.RoutineType).Valid() {
		details["type"] = "is not a routine type"
	}

	var err error
	if v := q.Get("limit"); v != "" {
		if opts.Limit, err = strconv.Atoi(v); err != nil || opts.Limit < 1 {
			details["limit"] = "must be a positive integer"
		}
	}
	if v := q.Get("offset"); v != "" {
		if opts.Offset, err = strconv.Atoi(v); err != nil || opts.Offset < 0 {
			details["offset"] = "must be a non-negative integer"
		}
	}
	if v := q.Get("favorites"); v != "" {
		if opts.FavoritesOnly, err = strconv.ParseBool(v); err != nil {
			details["favorites"] = "must be true or false"
		}
	}

	return opts.Page(), details
}

// dateParam reads the {date} URL parameter, writing a 400 when it is not
// a date key.
func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := chi.URLParam(r, "date")
	if !calendar.ValidKey(date) {
		middleware.ValidationResponse(w, "Invalid date", map[string]string{
			"date": "must be a date formatted as YYYY-MM-DD",
		})
		return "", false
	}
	return date, true
}

func listResponse[T any](w http.ResponseWriter, items []T, opts db.ListOptions) {
	if items == nil {
		items = []T{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.ListResponse[T]{
		Items:  items,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}
