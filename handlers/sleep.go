// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/middleware"
	"github.com/danielhkuo/fitlog/models"
	"github.com/danielhkuo/fitlog/summary"
)

const sleepConflict = "A sleep record already exists for this date"

type SleepHandler struct {
	store  *db.Store
	cache  *summary.Cache
	logger *zap.Logger
}

func NewSleepHandler(store *db.Store, cache *summary.Cache, logger *zap.Logger) *SleepHandler {
	return &SleepHandler{store: store, cache: cache, logger: logger}
}

// List handles GET /api/sleep
func (h *SleepHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, details := listOptions(r)
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Invalid query", details)
		return
	}

	records, err := h.store.ListSleep(r.Context(), middleware.UserID(r.Context()), opts)
	if err != nil {
		storeError(w, h.logger, err, "Sleep record", sleepConflict)
		return
	}
	listResponse(w, records, opts)
}

// Create handles POST /api/sleep
func (h *SleepHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSleepRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	rec := models.SleepRecord{
		UserID:    userID,
		SleepDate: req.SleepDate,
		Bedtime:   req.Bedtime,
		WakeTime:  req.WakeTime,
		Phases:    models.NormalizePhases(req.Phases),
		Notes:     req.Notes,
	}
	if req.TotalSleepHours != nil {
		rec.TotalSleepHours = *req.TotalSleepHours
	} else {
		rec.TotalSleepHours = models.SleepHours(rec.Bedtime, rec.WakeTime)
	}

	if err := h.store.CreateSleep(r.Context(), &rec); err != nil {
		storeError(w, h.logger, err, "Sleep record", sleepConflict)
		return
	}
	h.cache.Invalidate(userID)

	h.logger.Info("sleep record created", zap.String("user_id", userID), zap.String("date", rec.SleepDate))
	middleware.JSONResponse(w, http.StatusCreated, rec)
}

// Get handles GET /api/sleep/{id}
func (h *SleepHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetSleep(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Sleep record", sleepConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rec)
}

// Update handles PATCH /api/sleep/{id}. Hours are recomputed when the
// times change and no explicit total is sent.
func (h *SleepHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSleepRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	rec, err := h.store.GetSleep(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Sleep record", sleepConflict)
		return
	}

	timesChanged := req.Bedtime != nil || req.WakeTime != nil
	if req.SleepDate != nil {
		rec.SleepDate = *req.SleepDate
	}
	if req.Bedtime != nil {
		rec.Bedtime = *req.Bedtime
	}
	if req.WakeTime != nil {
		rec.WakeTime = *req.WakeTime
	}
	if !rec.WakeTime.After(rec.Bedtime) {
		middleware.ValidationResponse(w, "Validation failed", map[string]string{
			"wake_time": "must be after the start",
		})
		return
	}
	switch {
	case req.TotalSleepHours != nil:
		rec.TotalSleepHours = *req.TotalSleepHours
	case timesChanged:
		rec.TotalSleepHours = models.SleepHours(rec.Bedtime, rec.WakeTime)
	}
	if req.Phases != nil {
		rec.Phases = models.NormalizePhases(*req.Phases)
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}

	if err := h.store.UpdateSleep(r.Context(), &rec); err != nil {
		storeError(w, h.logger, err, "Sleep record", sleepConflict)
		return
	}
	h.cache.Invalidate(userID)
	middleware.JSONResponse(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/sleep/{id}
func (h *SleepHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteSleep(r.Context(), userID, id); err != nil {
		storeError(w, h.logger, err, "Sleep record", sleepConflict)
		return
	}
	h.cache.Invalidate(userID)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Deleted: id})
}
