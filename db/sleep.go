// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/fitlog/models"
	"github.com/google/uuid"
)

const sleepColumns = `id, user_id, sleep_date, bedtime, wake_time, total_sleep_hours, phases, notes, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSleep(row scanner) (models.SleepRecord, error) {
	var (
		rec    models.SleepRecord
		phases string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.SleepDate, &rec.Bedtime, &rec.WakeTime,
		&rec.TotalSleepHours, &phases, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal([]byte(phases), &rec.Phases); err != nil {
		return rec, fmt.Errorf("decode phases: %w", err)
	}
	if rec.Phases == nil {
		rec.Phases = []models.SleepPhase{}
	}
	return rec, nil
}

// CreateSleep inserts a sleep record, assigning its ID and timestamps.
// A second record for the same day returns ErrConflict.
func (s *Store) CreateSleep(ctx context.Context, rec *models.SleepRecord) error {
	if rec.Phases == nil {
		rec.Phases = []models.SleepPhase{}
	}
	phases, err := json.Marshal(rec.Phases)
	if err != nil {
		return fmt.Errorf("encode phases: %w", err)
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sleep_record (`+sleepColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, rec.ID, rec.UserID, rec.SleepDate, rec.Bedtime.UTC(), rec.WakeTime.UTC(),
		rec.TotalSleepHours, string(phases), rec.Notes, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return s.fail("create sleep", err)
	}
	return nil
}

func (s *Store) GetSleep(ctx context.Context, userID, id string) (models.SleepRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+sleepColumns+` FROM sleep_record WHERE id = $1 AND user_id = $2
	`, id, userID)
	rec, err := scanSleep(row)
	if err != nil {
		return rec, s.fail("get sleep", err)
	}
	return rec, nil
}

// ListSleep returns the user's records ordered by date.
func (s *Store) ListSleep(ctx context.Context, userID string, opts ListOptions) ([]models.SleepRecord, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	w.dateRange("sleep_date", opts)
	query := `SELECT ` + sleepColumns + ` FROM sleep_record` + w.String() +
		` ORDER BY sleep_date, created_at` + w.page(opts)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, s.fail("list sleep", err)
	}
	defer rows.Close()

	records := []models.SleepRecord{}
	for rows.Next() {
		rec, err := scanSleep(rows)
		if err != nil {
			return nil, s.fail("list sleep", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list sleep", err)
	}
	return records, nil
}

// UpdateSleep writes every mutable column of rec.
func (s *Store) UpdateSleep(ctx context.Context, rec *models.SleepRecord) error {
	phases, err := json.Marshal(rec.Phases)
	if err != nil {
		return fmt.Errorf("encode phases: %w", err)
	}
	rec.UpdatedAt = s.now()

	res, err := s.db.ExecContext(ctx, `
		UPDATE sleep_record
		SET sleep_date = $1, bedtime = $2, wake_time = $3, total_sleep_hours = $4,
		    phases = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`, rec.SleepDate, rec.Bedtime.UTC(), rec.WakeTime.UTC(), rec.TotalSleepHours,
		string(phases), rec.Notes, rec.UpdatedAt, rec.ID, rec.UserID)
	if err == nil {
		err = affected(res)
	}
	if err != nil {
		return s.fail("update sleep", err)
	}
	return nil
}

func (s *Store) DeleteSleep(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sleep_record WHERE id = $1 AND user_id = $2`, id, userID)
	if err == nil {
		err = affected(res)
	}
	if err != nil {
		return s.fail("delete sleep", err)
	}
	return nil
}
