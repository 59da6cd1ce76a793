// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/danielhkuo/fitlog/assign"
	"github.com/danielhkuo/fitlog/calendar"
	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/middleware"
	"github.com/danielhkuo/fitlog/models"
	"github.com/danielhkuo/fitlog/summary"
)

const (
	templateConflict = "A template with this id already exists"

	// failed dates listed in a recurring summary
	summaryDetails = 5

	maxAssignDays = 366
)

// AssignRecurringResponse reports a recurring batch. Summary is omitted
// when every date was created.
type AssignRecurringResponse struct {
	assign.Result
	Summary string `json:"summary,omitempty"`
}

type TemplateHandler struct {
	store    *db.Store
	cache    *summary.Cache
	executor *assign.Executor
	logger   *zap.Logger
}

func NewTemplateHandler(store *db.Store, cache *summary.Cache, executor *assign.Executor, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{store: store, cache: cache, executor: executor, logger: logger}
}

// List handles GET /api/templates. Favorites come first.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, details := listOptions(r)
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Invalid query", details)
		return
	}

	templates, err := h.store.ListTemplates(r.Context(), middleware.UserID(r.Context()), opts)
	if err != nil {
		storeError(w, h.logger, err, "Template", templateConflict)
		return
	}
	listResponse(w, templates, opts)
}

// Create handles POST /api/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTemplateRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if err := req.RoutineData.Check(req.RoutineType); err != nil {
		payloadError(w, req.RoutineType, err)
		return
	}

	tpl := models.RoutineTemplate{
		UserID:      middleware.UserID(r.Context()),
		Name:        req.Name,
		Description: req.Description,
		IsFavorite:  req.IsFavorite,
		RoutineType: req.RoutineType,
		RoutineData: req.RoutineData,
		Notes:       req.Notes,
	}
	if err := h.store.CreateTemplate(r.Context(), &tpl); err != nil {
		storeError(w, h.logger, err, "Template", templateConflict)
		return
	}

	h.logger.Info("template created", zap.String("user_id", tpl.UserID), zap.String("template_id", tpl.ID))
	middleware.JSONResponse(w, http.StatusCreated, tpl)
}

// Get handles GET /api/templates/{id}
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.store.GetTemplate(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Template", templateConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, tpl)
}

// Update handles PATCH /api/templates/{id}
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTemplateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	tpl, err := h.store.GetTemplate(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Template", templateConflict)
		return
	}

	t, data, err := mergePayload(tpl.RoutineType, tpl.RoutineData, req.RoutineType, req.RoutineData)
	if err != nil {
		payloadError(w, t, err)
		return
	}
	tpl.RoutineType, tpl.RoutineData = t, data
	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Description != nil {
		tpl.Description = *req.Description
	}
	if req.IsFavorite != nil {
		tpl.IsFavorite = *req.IsFavorite
	}
	if req.Notes != nil {
		tpl.Notes = *req.Notes
	}

	if err := h.store.UpdateTemplate(r.Context(), &tpl); err != nil {
		storeError(w, h.logger, err, "Template", templateConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, tpl)
}

// Delete handles DELETE /api/templates/{id}. Routines created from the
// template are kept.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteTemplate(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		storeError(w, h.logger, err, "Template", templateConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Deleted: id})
}

// Assign handles POST /api/templates/{id}/assign
func (h *TemplateHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req models.AssignTemplateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	tpl, err := h.store.GetTemplate(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Template", templateConflict)
		return
	}

	res, err := h.executor.Assign(r.Context(), userID, &tpl, []string{req.Date}, req.Overwrite)
	if err != nil {
		h.assignError(w, tpl.RoutineType, err)
		return
	}
	h.cache.Invalidate(userID)

	outcome := res.Outcomes[0]
	switch outcome.Outcome {
	case assign.OutcomeSuccess:
		middleware.JSONResponse(w, http.StatusCreated, outcome)
	case assign.OutcomeExists:
		middleware.ErrorResponse(w, http.StatusConflict,
			fmt.Sprintf("A %s routine already exists on %s", tpl.RoutineType, req.Date))
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to assign template: "+outcome.Message)
	}
}

// AssignRecurring handles POST /api/templates/{id}/assign-recurring
func (h *TemplateHandler) AssignRecurring(w http.ResponseWriter, r *http.Request) {
	var req models.AssignRecurringRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	start, _ := calendar.ParseKey(req.StartDate)
	end, _ := calendar.ParseKey(req.EndDate)
	if end.Before(start) {
		middleware.ValidationResponse(w, "Validation failed", map[string]string{
			"end_date": "must not be before start_date",
		})
		return
	}
	if int(end.Sub(start).Hours()/24)+1 > maxAssignDays {
		middleware.ValidationResponse(w, "Validation failed", map[string]string{
			"end_date": fmt.Sprintf("range is limited to %d days", maxAssignDays),
		})
		return
	}

	userID := middleware.UserID(r.Context())
	tpl, err := h.store.GetTemplate(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Template", templateConflict)
		return
	}

	res, err := h.executor.AssignRecurring(r.Context(), userID, &tpl, assign.Pattern{
		Start:    start,
		End:      end,
		Weekdays: req.Weekdays,
	}, req.Overwrite)
	if err != nil {
		h.assignError(w, tpl.RoutineType, err)
		return
	}
	h.cache.Invalidate(userID)

	middleware.JSONResponse(w, http.StatusOK, AssignRecurringResponse{
		Result:  res,
		Summary: res.Summary(summaryDetails),
	})
}

func (h *TemplateHandler) assignError(w http.ResponseWriter, t models.RoutineType, err error) {
	switch {
	case errors.Is(err, assign.ErrNoWeekdays):
		middleware.ValidationResponse(w, err.Error(), map[string]string{"weekdays": err.Error()})
	case errors.Is(err, assign.ErrNoTemplate):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, assign.ErrInvalidTemplate):
		payloadError(w, t, err)
	default:
		h.logger.Error("template assignment failed", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to assign template")
	}
}
