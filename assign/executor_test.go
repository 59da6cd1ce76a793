// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/models"
	"github.com/danielhkuo/fitlog/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// memStore keeps routines in a map keyed by user, date and type.
type memStore struct {
	mu        sync.Mutex
	rows      map[string]models.Routine
	failOn    map[string]error
	deleteErr error
	deletes   []string
	creates   []string
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]models.Routine{}, failOn: map[string]error{}}
}

func key(userID, date string, t models.RoutineType) string {
	return userID + "|" + date + "|" + string(t)
}

func (m *memStore) CreateRoutine(_ context.Context, r *models.Routine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates = append(m.creates, r.RoutineDate)
	if err := m.failOn[r.RoutineDate]; err != nil {
		return err
	}
	k := key(r.UserID, r.RoutineDate, r.RoutineType)
	if _, ok := m.rows[k]; ok {
		return fmt.Errorf("create routine: %w", db.ErrConflict)
	}
	r.ID = "r-" + r.RoutineDate
	m.rows[k] = *r
	return nil
}

func (m *memStore) DeleteRoutineByDateType(_ context.Context, userID, date string, t models.RoutineType) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, date)
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	k := key(userID, date, t)
	if _, ok := m.rows[k]; !ok {
		return 0, nil
	}
	delete(m.rows, k)
	return 1, nil
}

func gymTemplate() *models.RoutineTemplate {
	return &models.RoutineTemplate{
		ID:          "tpl-1",
		Name:        "Push",
		RoutineType: models.RoutineGym,
		RoutineData: models.RoutineData{
			GymData:   &models.GymData{DurationMinutes: 50},
			StepsData: &models.StepsData{Steps: 3},
		},
		Notes: "from template",
	}
}

func newTestExecutor(t *testing.T, store Store) *Executor {
	q := NewQueue(0)
	t.Cleanup(q.Close)
	return NewExecutor(store, q, zaptest.NewLogger(t))
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestAssignRecurringCreatesEveryPlannedDate(t *testing.T) {
	store := newMemStore()
	exec := newTestExecutor(t, store)

	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil

	res, err := exec.AssignRecurring(context.Background(), "alice", tpl, Pattern{
		Start:    date("2024-01-01"),
		End:      date("2024-01-31"),
		Weekdays: []int{0},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 5, res.SuccessCount)
	assert.Zero(t, res.ExistsCount)
	assert.Zero(t, res.ErrorCount)
	assert.Empty(t, res.Summary(5))
	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}, store.creates)

	created := store.rows[key("alice", "2024-01-15", models.RoutineGym)]
	assert.Equal(t, "from template", created.Notes)
	require.NotNil(t, created.GymData)
	assert.Equal(t, 50, created.GymData.DurationMinutes)
}

func TestAssignCopiesOnlyMatchingPayload(t *testing.T) {
	store := newMemStore()
	exec := newTestExecutor(t, store)

	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil
	_, err := exec.Assign(context.Background(), "alice", tpl, []string{"2024-03-15"}, false)
	require.NoError(t, err)

	stray := gymTemplate()
	_, err = exec.Assign(context.Background(), "alice", stray, []string{"2024-03-16"}, false)
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	assert.Len(t, store.creates, 1)

	created := store.rows[key("alice", "2024-03-15", models.RoutineGym)]
	assert.Nil(t, created.StepsData)
}

func TestAssignSecondRunReportsExists(t *testing.T) {
	store := newMemStore()
	exec := newTestExecutor(t, store)
	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil
	pattern := Pattern{Start: date("2024-02-01"), End: date("2024-02-29"), Weekdays: []int{1, 3}}

	first, err := exec.AssignRecurring(context.Background(), "alice", tpl, pattern, false)
	require.NoError(t, err)
	require.Positive(t, first.SuccessCount)

	second, err := exec.AssignRecurring(context.Background(), "alice", tpl, pattern, false)
	require.NoError(t, err)
	assert.Zero(t, second.SuccessCount)
	assert.Equal(t, first.SuccessCount, second.ExistsCount)
	assert.Zero(t, second.ErrorCount)
	assert.True(t, strings.HasPrefix(second.Summary(3), "0 created, 9 already existed, 0 failed"))
}

func TestAssignFailingDateDoesNotStopBatch(t *testing.T) {
	store := newMemStore()
	store.failOn["2024-01-10"] = errors.New("backend timeout")
	exec := newTestExecutor(t, store)
	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil

	dates := []string{"2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12"}
	res, err := exec.Assign(context.Background(), "alice", tpl, dates, false)
	require.NoError(t, err)

	assert.Equal(t, 3, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, dates, store.creates, "every date is attempted in order")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, DateError{Date: "2024-01-10", Message: "backend timeout"}, res.Errors[0])

	require.Len(t, res.Outcomes, 4)
	assert.Equal(t, OutcomeError, res.Outcomes[1].Outcome)
	assert.Equal(t, "r-2024-01-11", res.Outcomes[2].RoutineID)
}

func TestAssignOverwrite(t *testing.T) {
	store := newMemStore()
	exec := newTestExecutor(t, store)
	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil
	ctx := context.Background()

	_, err := exec.Assign(ctx, "alice", tpl, []string{"2024-03-15"}, false)
	require.NoError(t, err)

	tpl.Notes = "updated"
	res, err := exec.Assign(ctx, "alice", tpl, []string{"2024-03-15"}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, []string{"2024-03-15"}, store.deletes)
	assert.Equal(t, "updated", store.rows[key("alice", "2024-03-15", models.RoutineGym)].Notes)
}

func TestAssignOverwriteDeleteFailureIsOnlyLogged(t *testing.T) {
	store := newMemStore()
	store.deleteErr = errors.New("delete refused")
	exec := newTestExecutor(t, store)
	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil

	res, err := exec.Assign(context.Background(), "alice", tpl, []string{"2024-03-15", "2024-03-16"}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Len(t, store.deletes, 2)
}

func TestAssignBatchErrors(t *testing.T) {
	exec := newTestExecutor(t, newMemStore())
	ctx := context.Background()
	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil

	_, err := exec.Assign(ctx, "alice", nil, []string{"2024-01-01"}, false)
	assert.ErrorIs(t, err, ErrNoTemplate)

	_, err = exec.AssignRecurring(ctx, "alice", tpl, Pattern{Start: date("2024-01-01"), End: date("2024-01-31")}, false)
	assert.ErrorIs(t, err, ErrNoWeekdays)

	_, err = exec.AssignRecurring(ctx, "alice", nil, Pattern{Weekdays: []int{0}}, false)
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestAssignWithNoPlannedDates(t *testing.T) {
	store := newMemStore()
	exec := newTestExecutor(t, store)
	ctx := context.Background()
	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil

	// Mon..Wed never contains a Sunday
	res, err := exec.AssignRecurring(ctx, "alice", tpl, Pattern{Start: date("2024-01-01"), End: date("2024-01-03"), Weekdays: []int{6}}, false)
	require.NoError(t, err)
	assert.Zero(t, res.SuccessCount)
	assert.Zero(t, res.ExistsCount)
	assert.Zero(t, res.ErrorCount)
	assert.Empty(t, res.Outcomes)
	assert.NotNil(t, res.Errors)
	assert.Empty(t, res.Summary(5))

	res, err = exec.Assign(ctx, "alice", tpl, nil, false)
	require.NoError(t, err)
	assert.Empty(t, res.Outcomes)
	assert.Empty(t, store.creates)
}

func TestAssignIgnoresCallerCancellation(t *testing.T) {
	store := newMemStore()
	exec := newTestExecutor(t, store)
	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := exec.Assign(ctx, "alice", tpl, []string{"2024-03-15", "2024-03-16"}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.SuccessCount)
}

func TestAssignAfterQueueClosed(t *testing.T) {
	q := NewQueue(0)
	exec := NewExecutor(newMemStore(), q, zaptest.NewLogger(t))
	q.Close()

	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil
	res, err := exec.Assign(context.Background(), "alice", tpl, []string{"2024-03-15"}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, ErrQueueClosed.Error(), res.Errors[0].Message)
}

func TestAssignWithDelayTakesAtLeastDelayBetweenWrites(t *testing.T) {
	q := NewQueue(15 * time.Millisecond)
	t.Cleanup(q.Close)
	exec := NewExecutor(newMemStore(), q, zaptest.NewLogger(t))
	tpl := gymTemplate()
	tpl.RoutineData.StepsData = nil

	start := time.Now()
	res, err := exec.Assign(context.Background(), "alice", tpl, []string{"2024-03-15", "2024-03-16", "2024-03-17"}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, res.SuccessCount)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestResultSummary(t *testing.T) {
	res := Result{}
	res.record(DateOutcome{Date: "2024-01-01", Outcome: OutcomeSuccess})
	res.record(DateOutcome{Date: "2024-01-02", Outcome: OutcomeExists})
	for _, d := range []string{"2024-01-03", "2024-01-04", "2024-01-05"} {
		res.record(DateOutcome{Date: d, Outcome: OutcomeError, Message: "boom"})
	}

	got := res.Summary(2)
	want := "1 created, 1 already existed, 3 failed\n2024-01-03: boom\n2024-01-04: boom\n... and 1 more"
	assert.Equal(t, want, got)

	assert.Empty(t, Result{SuccessCount: 4}.Summary(5))
	assert.Equal(t, "0 created, 2 already existed, 0 failed", Result{ExistsCount: 2}.Summary(5))
}

func TestAssignAgainstStore(t *testing.T) {
	store := testutil.SetupTestStore(t)
	exec := newTestExecutor(t, store)
	tpl := testutil.CreateTestTemplate(t, store, "alice")
	ctx := context.Background()

	pattern := Pattern{Start: date("2024-01-01"), End: date("2024-01-14"), Weekdays: []int{0, 2, 4}}
	first, err := exec.AssignRecurring(ctx, "alice", &tpl, pattern, false)
	require.NoError(t, err)
	assert.Equal(t, 6, first.SuccessCount)

	second, err := exec.AssignRecurring(ctx, "alice", &tpl, pattern, false)
	require.NoError(t, err)
	assert.Equal(t, 0, second.SuccessCount)
	assert.Equal(t, 6, second.ExistsCount)

	third, err := exec.AssignRecurring(ctx, "alice", &tpl, pattern, true)
	require.NoError(t, err)
	assert.Equal(t, 6, third.SuccessCount)

	routines, err := store.ListRoutines(ctx, "alice", db.ListOptions{Limit: db.Unbounded})
	require.NoError(t, err)
	assert.Len(t, routines, 6)
	assert.Equal(t, "heavy", routines[0].Notes)
}
