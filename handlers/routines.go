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

const routineConflict = "A routine of this type already exists on this date"

type RoutineHandler struct {
	store  *db.Store
	cache  *summary.Cache
	logger *zap.Logger
}

func NewRoutineHandler(store *db.Store, cache *summary.Cache, logger *zap.Logger) *RoutineHandler {
	return &RoutineHandler{store: store, cache: cache, logger: logger}
}

// mergePayload applies an optional type change and an optional new payload
// to the current ones, then checks that they still agree.
func mergePayload(curType models.RoutineType, cur models.RoutineData, newType *models.RoutineType, data models.RoutineData) (models.RoutineType, models.RoutineData, error) {
	t := curType
	if newType != nil {
		t = *newType
	}
	if data.Payload() != nil {
		cur = data
	}
	return t, cur, cur.Check(t)
}

// List handles GET /api/routines
func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, details := listOptions(r)
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Invalid query", details)
		return
	}

	routines, err := h.store.ListRoutines(r.Context(), middleware.UserID(r.Context()), opts)
	if err != nil {
		storeError(w, h.logger, err, "Routine", routineConflict)
		return
	}
	listResponse(w, routines, opts)
}

// Create handles POST /api/routines
func (h *RoutineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoutineRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if err := req.RoutineData.Check(req.RoutineType); err != nil {
		payloadError(w, req.RoutineType, err)
		return
	}

	userID := middleware.UserID(r.Context())
	routine := models.Routine{
		UserID:      userID,
		RoutineDate: req.RoutineDate,
		RoutineType: req.RoutineType,
		RoutineData: req.RoutineData,
		Notes:       req.Notes,
	}
	if err := h.store.CreateRoutine(r.Context(), &routine); err != nil {
		storeError(w, h.logger, err, "Routine", routineConflict)
		return
	}
	h.cache.Invalidate(userID)

	h.logger.Info("routine created",
		zap.String("user_id", userID),
		zap.String("date", routine.RoutineDate),
		zap.String("type", string(routine.RoutineType)),
	)
	middleware.JSONResponse(w, http.StatusCreated, routine)
}

// Get handles GET /api/routines/{id}
func (h *RoutineHandler) Get(w http.ResponseWriter, r *http.Request) {
	routine, err := h.store.GetRoutine(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Routine", routineConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, routine)
}

// Update handles PATCH /api/routines/{id}. Changing the type requires a
// payload of the new type.
func (h *RoutineHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRoutineRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	routine, err := h.store.GetRoutine(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Routine", routineConflict)
		return
	}

	t, data, err := mergePayload(routine.RoutineType, routine.RoutineData, req.RoutineType, req.RoutineData)
	if err != nil {
		payloadError(w, t, err)
		return
	}
	routine.RoutineType, routine.RoutineData = t, data
	if req.RoutineDate != nil {
		routine.RoutineDate = *req.RoutineDate
	}
	if req.Notes != nil {
		routine.Notes = *req.Notes
	}

	if err := h.store.UpdateRoutine(r.Context(), &routine); err != nil {
		storeError(w, h.logger, err, "Routine", routineConflict)
		return
	}
	h.cache.Invalidate(userID)
	middleware.JSONResponse(w, http.StatusOK, routine)
}

// Delete handles DELETE /api/routines/{id}
func (h *RoutineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteRoutine(r.Context(), userID, id); err != nil {
		storeError(w, h.logger, err, "Routine", routineConflict)
		return
	}
	h.cache.Invalidate(userID)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Deleted: id})
}
