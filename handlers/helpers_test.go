// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap/zaptest"

	"github.com/danielhkuo/fitlog/assign"
	"github.com/danielhkuo/fitlog/critique"
	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/middleware"
	"github.com/danielhkuo/fitlog/summary"
	"github.com/danielhkuo/fitlog/testutil"
)

// testEnv wires every handler over one in-memory store.
type testEnv struct {
	store     *db.Store
	cache     *summary.Cache
	sleep     *SleepHandler
	meals     *MealHandler
	routines  *RoutineHandler
	templates *TemplateHandler
	catalog   *CatalogHandler
	days      *DayHandler
	critic    *stubCritic
}

type stubCritic struct {
	result critique.Critique
	err    error
	calls  int
}

func (c *stubCritic) Critique(_ context.Context, doc summary.Export) (critique.Critique, error) {
	c.calls++
	if doc.Empty() {
		return critique.Critique{}, critique.ErrEmptyDay
	}
	return c.result, c.err
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zaptest.NewLogger(t)
	store := testutil.SetupTestStore(t)
	loader := summary.NewLoader(store)
	cache := summary.NewCache(loader)

	queue := assign.NewQueue(testutil.GetTestConfig().AssignDelay)
	t.Cleanup(queue.Close)
	executor := assign.NewExecutor(store, queue, logger)

	critic := &stubCritic{}
	return &testEnv{
		store:     store,
		cache:     cache,
		sleep:     NewSleepHandler(store, cache, logger),
		meals:     NewMealHandler(store, cache, logger),
		routines:  NewRoutineHandler(store, cache, logger),
		templates: NewTemplateHandler(store, cache, executor, logger),
		catalog:   NewCatalogHandler(store, logger),
		days:      NewDayHandler(loader, cache, critic, logger),
		critic:    critic,
	}
}

// authed builds a request as userID would send it after RequireUser, with
// the given chi URL parameters as name/value pairs.
func authed(method, path string, body interface{}, userID string, params ...string) *http.Request {
	req := testutil.MakeRequest(method, path, body, nil)

	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = middleware.WithUserID(ctx, userID)
	return req.WithContext(ctx)
}
