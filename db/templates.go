// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"

	"github.com/danielhkuo/fitlog/models"
	"github.com/google/uuid"
)

const templateColumns = `id, user_id, name, description, is_favorite, routine_type, payload, notes, created_at, updated_at`

func scanTemplate(row scanner) (models.RoutineTemplate, error) {
	var (
		t       models.RoutineTemplate
		payload string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.IsFavorite, &t.RoutineType,
		&payload, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	t.RoutineData, err = models.DecodePayload(t.RoutineType, []byte(payload))
	return t, err
}

func (s *Store) CreateTemplate(ctx context.Context, t *models.RoutineTemplate) error {
	if err := t.RoutineData.Check(t.RoutineType); err != nil {
		return err
	}
	payload, err := models.EncodePayload(t.RoutineData)
	if err != nil {
		return err
	}

	t.ID = uuid.NewString()
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO routine_template (`+templateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, t.ID, t.UserID, t.Name, t.Description, t.IsFavorite, string(t.RoutineType),
		string(payload), t.Notes, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return s.fail("create template", err)
	}
	return nil
}

func (s *Store) GetTemplate(ctx context.Context, userID, id string) (models.RoutineTemplate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+templateColumns+` FROM routine_template WHERE id = $1 AND user_id = $2
	`, id, userID)
	t, err := scanTemplate(row)
	if err != nil {
		return t, s.fail("get template", err)
	}
	return t, nil
}

// ListTemplates returns favorites first, then by name.
func (s *Store) ListTemplates(ctx context.Context, userID string, opts ListOptions) ([]models.RoutineTemplate, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if opts.RoutineType != "" {
		w.add("routine_type = ?", opts.RoutineType)
	}
	if opts.FavoritesOnly {
		w.add("is_favorite = ?", true)
	}
	query := `SELECT ` + templateColumns + ` FROM routine_template` + w.String() +
		` ORDER BY is_favorite DESC, name, created_at` + w.page(opts)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, s.fail("list templates", err)
	}
	defer rows.Close()

	templates := []models.RoutineTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, s.fail("list templates", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list templates", err)
	}
	return templates, nil
}

func (s *Store) UpdateTemplate(ctx context.Context, t *models.RoutineTemplate) error {
	if err := t.RoutineData.Check(t.RoutineType); err != nil {
		return err
	}
	payload, err := models.EncodePayload(t.RoutineData)
	if err != nil {
		return err
	}
	t.UpdatedAt = s.now()

	res, err := s.db.ExecContext(ctx, `
		UPDATE routine_template
		SET name = $1, description = $2, is_favorite = $3, routine_type = $4,
		    payload = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`, t.Name, t.Description, t.IsFavorite, string(t.RoutineType), string(payload),
		t.Notes, t.UpdatedAt, t.ID, t.UserID)
	if err == nil {
		err = affected(res)
	}
	if err != nil {
		return s.fail("update template", err)
	}
	return nil
}

func (s *Store) DeleteTemplate(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM routine_template WHERE id = $1 AND user_id = $2`, id, userID)
	if err == nil {
		err = affected(res)
	}
	if err != nil {
		return s.fail("delete template", err)
	}
	return nil
}
