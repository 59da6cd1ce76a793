// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/fitlog/models"
	"github.com/google/uuid"
)

const mealColumns = `id, user_id, meal_date, breakfast, lunch, snack, dinner, water_liters, notes, created_at, updated_at`

func encodeSlot(slot *models.MealSlot) (sql.NullString, error) {
	if slot == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(slot)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode meal slot: %w", err)
	}
	s := string(b)
	return nullableString(&s), nil
}

func decodeSlot(raw sql.NullString) (*models.MealSlot, error) {
	if !raw.Valid {
		return nil, nil
	}
	var slot models.MealSlot
	if err := json.Unmarshal([]byte(raw.String), &slot); err != nil {
		return nil, fmt.Errorf("decode meal slot: %w", err)
	}
	return &slot, nil
}

// encodeSlots returns breakfast, lunch, snack and dinner ready for binding.
func encodeSlots(m *models.Meal) ([]interface{}, error) {
	out := make([]interface{}, 0, 4)
	for _, slot := range m.Slots() {
		v, err := encodeSlot(slot)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func scanMeal(row scanner) (models.Meal, error) {
	var (
		m     models.Meal
		slots [4]sql.NullString
		water sql.NullFloat64
	)
	err := row.Scan(&m.ID, &m.UserID, &m.MealDate, &slots[0], &slots[1], &slots[2], &slots[3],
		&water, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return m, err
	}

	targets := []**models.MealSlot{&m.Breakfast, &m.Lunch, &m.Snack, &m.Dinner}
	for i, raw := range slots {
		slot, err := decodeSlot(raw)
		if err != nil {
			return m, err
		}
		*targets[i] = slot
	}
	if water.Valid {
		m.WaterLiters = &water.Float64
	}
	return m, nil
}

// CreateMeal inserts the day's meal. A second meal for the same day returns
// ErrConflict.
func (s *Store) CreateMeal(ctx context.Context, m *models.Meal) error {
	slots, err := encodeSlots(m)
	if err != nil {
		return err
	}

	m.ID = uuid.NewString()
	m.CreatedAt = s.now()
	m.UpdatedAt = m.CreatedAt

	args := append([]interface{}{m.ID, m.UserID, m.MealDate}, slots...)
	args = append(args, nullableFloat(m.WaterLiters), m.Notes, m.CreatedAt, m.UpdatedAt)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO meal (`+mealColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, args...)
	if err != nil {
		return s.fail("create meal", err)
	}
	return nil
}

func (s *Store) GetMeal(ctx context.Context, userID, id string) (models.Meal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+mealColumns+` FROM meal WHERE id = $1 AND user_id = $2
	`, id, userID)
	m, err := scanMeal(row)
	if err != nil {
		return m, s.fail("get meal", err)
	}
	return m, nil
}

// ListMeals returns the user's meals ordered by date.
func (s *Store) ListMeals(ctx context.Context, userID string, opts ListOptions) ([]models.Meal, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	w.dateRange("meal_date", opts)
	query := `SELECT ` + mealColumns + ` FROM meal` + w.String() +
		` ORDER BY meal_date, created_at` + w.page(opts)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, s.fail("list meals", err)
	}
	defer rows.Close()

	meals := []models.Meal{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, s.fail("list meals", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list meals", err)
	}
	return meals, nil
}

func (s *Store) UpdateMeal(ctx context.Context, m *models.Meal) error {
	slots, err := encodeSlots(m)
	if err != nil {
		return err
	}
	m.UpdatedAt = s.now()

	args := append([]interface{}{m.MealDate}, slots...)
	args = append(args, nullableFloat(m.WaterLiters), m.Notes, m.UpdatedAt, m.ID, m.UserID)

	res, err := s.db.ExecContext(ctx, `
		UPDATE meal
		SET meal_date = $1, breakfast = $2, lunch = $3, snack = $4, dinner = $5,
		    water_liters = $6, notes = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
	`, args...)
	if err == nil {
		err = affected(res)
	}
	if err != nil {
		return s.fail("update meal", err)
	}
	return nil
}

func (s *Store) DeleteMeal(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meal WHERE id = $1 AND user_id = $2`, id, userID)
	if err == nil {
		err = affected(res)
	}
	if err != nil {
		return s.fail("delete meal", err)
	}
	return nil
}
