// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/models"
	"github.com/danielhkuo/fitlog/testutil"
)

// TestConcurrentRoutineCreates verifies that simultaneous creates of the
// same type on the same day leave exactly one routine behind
func TestConcurrentRoutineCreates(t *testing.T) {
	env := setupTestEnv(t)

	const attempts = 10
	var created, conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(steps int) {
			defer wg.Done()

			req := models.CreateRoutineRequest{
				RoutineDate: "2024-03-15",
				RoutineType: models.RoutineSteps,
				RoutineData: models.RoutineData{StepsData: &models.StepsData{Steps: steps}},
			}
			w := httptest.NewRecorder()
			env.routines.Create(w, authed("POST", "/api/routines", req, "alice"))

			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(1000 * (i + 1))
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 created routine, got %d", created.Load())
	}
	if conflicts.Load() != attempts-1 {
		t.Errorf("Expected %d conflicts, got %d", attempts-1, conflicts.Load())
	}
}

// TestConcurrentRecurringAssignments runs two overlapping batches at once.
// The queue serializes them, so every date ends up created exactly once
// and the two results together account for every date twice.
func TestConcurrentRecurringAssignments(t *testing.T) {
	env := setupTestEnv(t)
	tpl := testutil.CreateTestTemplate(t, env.store, "alice")

	req := models.AssignRecurringRequest{
		StartDate: "2024-05-01",
		EndDate:   "2024-05-31",
		Weekdays:  []int{0, 1, 2, 3, 4, 5, 6},
	}

	results := make([]AssignRecurringResponse, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			env.templates.AssignRecurring(w, authed("POST", "/api/templates/"+tpl.ID+"/assign-recurring", req, "alice", "id", tpl.ID))
			if w.Code != http.StatusOK {
				t.Errorf("Batch %d failed: %d - %s", i, w.Code, w.Body.String())
				return
			}
			json.NewDecoder(w.Body).Decode(&results[i])
		}(i)
	}
	wg.Wait()

	success := results[0].SuccessCount + results[1].SuccessCount
	exists := results[0].ExistsCount + results[1].ExistsCount
	if success != 31 || exists != 31 {
		t.Errorf("Expected 31 created and 31 existing across both batches, got %d and %d", success, exists)
	}

	routines, err := env.store.ListRoutines(context.Background(), "alice", db.ListOptions{Limit: db.Unbounded})
	if err != nil {
		t.Fatalf("Failed to list routines: %v", err)
	}
	if len(routines) != 31 {
		t.Errorf("Expected 31 routines, got %d", len(routines))
	}
}

// TestParallelUsers checks that different users never block each other's
// unique dates
func TestParallelUsers(t *testing.T) {
	env := setupTestEnv(t)

	users := []string{"u1", "u2", "u3", "u4", "u5"}
	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			for _, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
				w := httptest.NewRecorder()
				env.meals.Create(w, authed("POST", "/api/meals", models.CreateMealRequest{
					MealDate: date,
					Lunch:    &models.MealSlot{Description: "salad"},
				}, user))
				if w.Code != http.StatusCreated {
					t.Errorf("%s on %s: expected 201, got %d", user, date, w.Code)
				}
			}
		}(u)
	}
	wg.Wait()

	for _, u := range users {
		meals, err := env.store.ListMeals(context.Background(), u, db.ListOptions{Limit: db.Unbounded})
		if err != nil {
			t.Fatalf("Failed to list meals: %v", err)
		}
		if len(meals) != 3 {
			t.Errorf("Expected 3 meals for %s, got %d", u, len(meals))
		}
	}
}
