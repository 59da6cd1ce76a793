// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/models"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "bare path",
			dsn:  "fitlog.db",
			want: "fitlog.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite",
		},
		{
			name: "existing query",
			dsn:  "file:fitlog.db?mode=rwc",
			want: "file:fitlog.db?mode=rwc&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite",
		},
		{
			name: "caller settings win",
			dsn:  "fitlog.db?_pragma=busy_timeout(100)&_time_format=sqlite",
			want: "fitlog.db?_pragma=busy_timeout(100)&_time_format=sqlite&_pragma=journal_mode(WAL)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.SQLiteDSN(tt.dsn))
		})
	}
}

func TestConcurrentWritesOnFileDatabase(t *testing.T) {
	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "fitlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.CreateSchema(conn))

	store := db.NewStore(conn, zaptest.NewLogger(t))
	ctx := context.Background()

	const writers = 40
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		day := fmt.Sprintf("2024-%02d-%02d", i/28+1, i%28+1)
		g.Go(func() error {
			return store.CreateRoutine(ctx, &models.Routine{
				UserID:      "alice",
				RoutineDate: day,
				RoutineType: models.RoutineSteps,
				RoutineData: models.RoutineData{StepsData: &models.StepsData{Steps: 5000}},
			})
		})
	}
	require.NoError(t, g.Wait())

	all, err := store.ListRoutines(ctx, "alice", db.ListOptions{Limit: db.Unbounded})
	require.NoError(t, err)
	assert.Len(t, all, writers)
}
