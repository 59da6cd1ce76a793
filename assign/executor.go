// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/fitlog/calendar"
	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/models"
	"go.uber.org/zap"
)

var (
	ErrNoTemplate      = errors.New("no template selected")
	ErrNoWeekdays      = errors.New("select at least one weekday")
	ErrInvalidTemplate = errors.New("template payload is invalid")
)

// Store is the persistence the executor writes through.
type Store interface {
	CreateRoutine(ctx context.Context, r *models.Routine) error
	DeleteRoutineByDateType(ctx context.Context, userID, date string, t models.RoutineType) (int64, error)
}

// Pattern selects the weekdays (0 = Monday) in an inclusive date range.
type Pattern struct {
	Start    time.Time
	End      time.Time
	Weekdays []int
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeExists  Outcome = "exists"
	OutcomeError   Outcome = "error"
)

type DateOutcome struct {
	Date      string  `json:"date"`
	Outcome   Outcome `json:"outcome"`
	RoutineID string  `json:"routine_id,omitempty"`
	Message   string  `json:"message,omitempty"`
}

type DateError struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

// Result aggregates a batch. Every planned date lands in exactly one counter.
type Result struct {
	SuccessCount int           `json:"success_count"`
	ExistsCount  int           `json:"exists_count"`
	ErrorCount   int           `json:"error_count"`
	Errors       []DateError   `json:"errors"`
	Outcomes     []DateOutcome `json:"outcomes"`
}

func (r *Result) record(o DateOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Outcome {
	case OutcomeSuccess:
		r.SuccessCount++
	case OutcomeExists:
		r.ExistsCount++
	default:
		r.ErrorCount++
		r.Errors = append(r.Errors, DateError{Date: o.Date, Message: o.Message})
	}
}

// Summary describes a batch that did not fully succeed. It lists at most
// maxDetails failed dates and is empty when every date was created.
func (r Result) Summary(maxDetails int) string {
	if r.ExistsCount == 0 && r.ErrorCount == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d created, %d already existed, %d failed", r.SuccessCount, r.ExistsCount, r.ErrorCount)
	for i, e := range r.Errors {
		if i == maxDetails {
			fmt.Fprintf(&b, "\n... and %d more", len(r.Errors)-maxDetails)
			break
		}
		fmt.Fprintf(&b, "\n%s: %s", e.Date, e.Message)
	}
	return b.String()
}

// Executor applies templates to dates through a Queue.
type Executor struct {
	store  Store
	queue  *Queue
	logger *zap.Logger
}

func NewExecutor(store Store, queue *Queue, logger *zap.Logger) *Executor {
	return &Executor{store: store, queue: queue, logger: logger}
}

// AssignRecurring plans the pattern and assigns tpl to every matching date.
func (e *Executor) AssignRecurring(ctx context.Context, userID string, tpl *models.RoutineTemplate, p Pattern, overwrite bool) (Result, error) {
	if tpl == nil {
		return Result{}, ErrNoTemplate
	}
	if len(p.Weekdays) == 0 {
		return Result{}, ErrNoWeekdays
	}
	dates := calendar.Keys(calendar.Plan(p.Start, p.End, p.Weekdays))
	return e.Assign(ctx, userID, tpl, dates, overwrite)
}

// Assign creates a routine from tpl on each date, in order. Per-date
// failures are recorded in the Result; only batch-level problems return an
// error. No dates is an empty Result. The batch is not cancelled with ctx
// once started.
func (e *Executor) Assign(ctx context.Context, userID string, tpl *models.RoutineTemplate, dates []string, overwrite bool) (Result, error) {
	if tpl == nil {
		return Result{}, ErrNoTemplate
	}
	if err := tpl.RoutineData.Check(tpl.RoutineType); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	result := Result{Errors: []DateError{}, Outcomes: make([]DateOutcome, 0, len(dates))}
	if len(dates) == 0 {
		return result, nil
	}

	ctx = context.WithoutCancel(ctx)
	log := e.logger.With(
		zap.String("user_id", userID),
		zap.String("template_id", tpl.ID),
		zap.Int("dates", len(dates)),
		zap.Bool("overwrite", overwrite),
	)

	for _, date := range dates {
		var outcome DateOutcome
		err := e.queue.Do(func() {
			outcome = e.assignOne(ctx, log, userID, tpl, date, overwrite)
		})
		if err != nil {
			outcome = DateOutcome{Date: date, Outcome: OutcomeError, Message: err.Error()}
		}
		result.record(outcome)
	}

	log.Info("template assignment finished",
		zap.Int("success", result.SuccessCount),
		zap.Int("exists", result.ExistsCount),
		zap.Int("errors", result.ErrorCount),
	)
	return result, nil
}

func (e *Executor) assignOne(ctx context.Context, log *zap.Logger, userID string, tpl *models.RoutineTemplate, date string, overwrite bool) DateOutcome {
	if overwrite {
		if _, err := e.store.DeleteRoutineByDateType(ctx, userID, date, tpl.RoutineType); err != nil {
			log.Warn("overwrite delete failed", zap.String("date", date), zap.Error(err))
		}
	}

	routine := models.Routine{
		UserID:      userID,
		RoutineDate: date,
		RoutineType: tpl.RoutineType,
		RoutineData: tpl.RoutineData.Only(tpl.RoutineType),
		Notes:       tpl.Notes,
	}

	err := e.store.CreateRoutine(ctx, &routine)
	switch {
	case err == nil:
		return DateOutcome{Date: date, Outcome: OutcomeSuccess, RoutineID: routine.ID}
	case errors.Is(err, db.ErrConflict):
		return DateOutcome{Date: date, Outcome: OutcomeExists}
	default:
		log.Error("assignment failed", zap.String("date", date), zap.Error(err))
		return DateOutcome{Date: date, Outcome: OutcomeError, Message: err.Error()}
	}
}
