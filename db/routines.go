// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/danielhkuo/fitlog/models"
	"github.com/google/uuid"
)

const routineColumns = `id, user_id, routine_date, routine_type, payload, notes, created_at, updated_at`

func scanRoutine(row scanner) (models.Routine, error) {
	var (
		r       models.Routine
		payload string
	)
	err := row.Scan(&r.ID, &r.UserID, &r.RoutineDate, &r.RoutineType, &payload,
		&r.Notes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	r.RoutineData, err = models.DecodePayload(r.RoutineType, []byte(payload))
	return r, err
}

// CreateRoutine inserts a routine. Only the payload matching the routine type
// is persisted. A second routine of the same type on the same day returns
// ErrConflict.
func (s *Store) CreateRoutine(ctx context.Context, r *models.Routine) error {
	if err := r.RoutineData.Check(r.RoutineType); err != nil {
		return err
	}
	payload, err := models.EncodePayload(r.RoutineData)
	if err != nil {
		return err
	}

	r.ID = uuid.NewString()
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO routine (`+routineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.ID, r.UserID, r.RoutineDate, string(r.RoutineType), string(payload), r.Notes, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return s.fail("create routine", err)
	}
	return nil
}

func (s *Store) GetRoutine(ctx context.Context, userID, id string) (models.Routine, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+routineColumns+` FROM routine WHERE id = $1 AND user_id = $2
	`, id, userID)
	r, err := scanRoutine(row)
	if err != nil {
		return r, s.fail("get routine", err)
	}
	return r, nil
}

// ListRoutines returns the user's routines ordered by date, optionally
// narrowed to one routine type.
func (s *Store) ListRoutines(ctx context.Context, userID string, opts ListOptions) ([]models.Routine, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	w.dateRange("routine_date", opts)
	if opts.RoutineType != "" {
		w.add("routine_type = ?", opts.RoutineType)
	}
	query := `SELECT ` + routineColumns + ` FROM routine` + w.String() +
		` ORDER BY routine_date, created_at` + w.page(opts)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, s.fail("list routines", err)
	}
	defer rows.Close()

	routines := []models.Routine{}
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, s.fail("list routines", err)
		}
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list routines", err)
	}
	return routines, nil
}

func (s *Store) UpdateRoutine(ctx context.Context, r *models.Routine) error {
	if err := r.RoutineData.Check(r.RoutineType); err != nil {
		return err
	}
	payload, err := models.EncodePayload(r.RoutineData)
	if err != nil {
		return err
	}
	r.UpdatedAt = s.now()

	res, err := s.db.ExecContext(ctx, `
		UPDATE routine
		SET routine_date = $1, routine_type = $2, payload = $3, notes = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`, r.RoutineDate, string(r.RoutineType), string(payload), r.Notes, r.UpdatedAt, r.ID, r.UserID)
	if err == nil {
		err = affected(res)
	}
	if err != nil {
		return s.fail("update routine", err)
	}
	return nil
}

func (s *Store) DeleteRoutine(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM routine WHERE id = $1 AND user_id = $2`, id, userID)
	if err == nil {
		err = affected(res)
	}
	if err != nil {
		return s.fail("delete routine", err)
	}
	return nil
}

// DeleteRoutineByDateType removes the routine occupying (date, type), if any.
// It reports how many rows were removed.
func (s *Store) DeleteRoutineByDateType(ctx context.Context, userID, date string, t models.RoutineType) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM routine WHERE user_id = $1 AND routine_date = $2 AND routine_type = $3
	`, userID, date, string(t))
	if err != nil {
		return 0, s.fail("delete routine by date", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete routine by date: %w", err)
	}
	return n, nil
}
