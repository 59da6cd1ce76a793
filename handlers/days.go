// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/danielhkuo/fitlog/calendar"
	"github.com/danielhkuo/fitlog/critique"
	"github.com/danielhkuo/fitlog/middleware"
	"github.com/danielhkuo/fitlog/summary"
)

// maxExportDays bounds a range export.
const maxExportDays = 366

// Critic reviews one exported day.
type Critic interface {
	Critique(ctx context.Context, doc summary.Export) (critique.Critique, error)
}

// DayHandler serves the read side: day summaries, exports, the month
// calendar and critiques.
type DayHandler struct {
	loader *summary.Loader
	cache  *summary.Cache
	critic Critic
	logger *zap.Logger
}

func NewDayHandler(loader *summary.Loader, cache *summary.Cache, critic Critic, logger *zap.Logger) *DayHandler {
	return &DayHandler{loader: loader, cache: cache, critic: critic, logger: logger}
}

func (h *DayHandler) day(w http.ResponseWriter, r *http.Request) (summary.Day, bool) {
	date, ok := dateParam(w, r)
	if !ok {
		return summary.Day{}, false
	}
	day, err := h.loader.Day(r.Context(), middleware.UserID(r.Context()), date)
	if err != nil {
		h.logger.Error("failed to load day", zap.String("date", date), zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return summary.Day{}, false
	}
	return day, true
}

// GetDay handles GET /api/days/{date}
func (h *DayHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	day, ok := h.day(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, day)
}

// ExportDay handles GET /api/days/{date}/export
func (h *DayHandler) ExportDay(w http.ResponseWriter, r *http.Request) {
	day, ok := h.day(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="fitlog-%s.json"`, day.Date))
	middleware.JSONResponse(w, http.StatusOK, summary.BuildExport(day))
}

// ExportRange handles GET /api/export?from=&to=. Days with nothing
// logged are left out.
func (h *DayHandler) ExportRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, errFrom := calendar.ParseKey(q.Get("from"))
	to, errTo := calendar.ParseKey(q.Get("to"))

	details := map[string]string{}
	if errFrom != nil {
		details["from"] = "must be a date formatted as YYYY-MM-DD"
	}
	if errTo != nil {
		details["to"] = "must be a date formatted as YYYY-MM-DD"
	}
	if len(details) == 0 {
		switch days := int(to.Sub(from).Hours()/24) + 1; {
		case to.Before(from):
			details["to"] = "must not be before from"
		case days > maxExportDays:
			details["to"] = fmt.Sprintf("range is limited to %d days", maxExportDays)
		}
	}
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Invalid export range", details)
		return
	}

	userID := middleware.UserID(r.Context())
	keys := calendar.Keys(calendar.Range(from, to))
	ix, err := h.loader.Load(r.Context(), userID, keys[0], keys[len(keys)-1])
	if err != nil {
		h.logger.Error("failed to load export range", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="fitlog-%s-to-%s.json"`, keys[0], keys[len(keys)-1]))
	middleware.JSONResponse(w, http.StatusOK, summary.ExportRange(ix, keys))
}

// Critique handles POST /api/days/{date}/critique
func (h *DayHandler) Critique(w http.ResponseWriter, r *http.Request) {
	day, ok := h.day(w, r)
	if !ok {
		return
	}

	c, err := h.critic.Critique(r.Context(), summary.BuildExport(day))
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusOK, c)
	case errors.Is(err, critique.ErrEmptyDay):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Nothing is logged for this day yet")
	case errors.Is(err, critique.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusBadGateway, critique.ErrUnavailable.Error())
	default:
		h.logger.Error("critique failed", zap.String("date", day.Date), zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to critique day")
	}
}

// Calendar handles GET /api/calendar?year=&month=. Missing values default
// to the current month.
func (h *DayHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	today, _ := calendar.ParseKey(calendar.Today())
	year, month := today.Year(), int(today.Month())

	q := r.URL.Query()
	details := map[string]string{}
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 9999 {
			details["year"] = "must be a year between 1 and 9999"
		}
		year = n
	}
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			details["month"] = "must be a month between 1 and 12"
		}
		month = n
	}
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Invalid calendar query", details)
		return
	}

	from, to := summary.MonthWindow(year, time.Month(month))
	ix, err := h.cache.Window(r.Context(), middleware.UserID(r.Context()), from, to)
	if err != nil {
		h.logger.Error("failed to load calendar window", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, summary.Month(ix, year, time.Month(month)))
}
