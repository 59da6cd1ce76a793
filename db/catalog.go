// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/danielhkuo/fitlog/models"
	"github.com/google/uuid"
)

const (
	productColumns  = `id, user_id, name, brand, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, is_default, created_at`
	exerciseColumns = `id, user_id, name, category, description, is_default, created_at`
)

// visible restricts catalog rows to shared defaults plus the user's own.
func visible(w *where, userID string) {
	w.add("(is_default = ? OR user_id = ?)", true, userID)
}

func search(w *where, opts ListOptions) {
	if q := strings.TrimSpace(opts.Query); q != "" {
		w.add("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
}

func scanProduct(row scanner) (models.Product, error) {
	var (
		p     models.Product
		owner sql.NullString
	)
	err := row.Scan(&p.ID, &owner, &p.Name, &p.Brand, &p.CaloriesPer100g, &p.ProteinPer100g,
		&p.CarbsPer100g, &p.FatPer100g, &p.IsDefault, &p.CreatedAt)
	if owner.Valid {
		p.UserID = &owner.String
	}
	return p, err
}

func scanExercise(row scanner) (models.Exercise, error) {
	var (
		e     models.Exercise
		owner sql.NullString
	)
	err := row.Scan(&e.ID, &owner, &e.Name, &e.Category, &e.Description, &e.IsDefault, &e.CreatedAt)
	if owner.Valid {
		e.UserID = &owner.String
	}
	return e, err
}

// Products

// ListProducts returns defaults and the user's own products by name.
func (s *Store) ListProducts(ctx context.Context, userID string, opts ListOptions) ([]models.Product, error) {
	w := &where{}
	visible(w, userID)
	search(w, opts)
	query := `SELECT ` + productColumns + ` FROM product` + w.String() +
		` ORDER BY name, id` + w.page(opts)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, s.fail("list products", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, s.fail("list products", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list products", err)
	}
	return products, nil
}

// GetProduct finds a product the user can see.
func (s *Store) GetProduct(ctx context.Context, userID, id string) (models.Product, error) {
	w := &where{}
	w.add("id = ?", id)
	visible(w, userID)
	p, err := scanProduct(s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM product`+w.String(), w.args...))
	if err != nil {
		return p, s.fail("get product", err)
	}
	return p, nil
}

// CreateProduct stores a product owned by p.UserID.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	p.ID = uuid.NewString()
	p.IsDefault = false
	p.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO product (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.ID, nullableString(p.UserID), p.Name, p.Brand, p.CaloriesPer100g, p.ProteinPer100g,
		p.CarbsPer100g, p.FatPer100g, p.IsDefault, p.CreatedAt)
	if err != nil {
		return s.fail("create product", err)
	}
	return nil
}

// ownable loads a catalog row's default flag for userID. Defaults return
// ErrForbidden, foreign or missing rows ErrNotFound.
func (s *Store) ownable(ctx context.Context, op, table, userID, id string) error {
	var isDefault bool
	w := &where{}
	w.add("id = ?", id)
	visible(w, userID)
	err := s.db.QueryRowContext(ctx, `SELECT is_default FROM `+table+w.String(), w.args...).Scan(&isDefault)
	if err != nil {
		return s.fail(op, err)
	}
	if isDefault {
		return ErrForbidden
	}
	return nil
}

// UpdateProduct writes the mutable columns of one of the user's products.
// Defaults cannot be changed.
func (s *Store) UpdateProduct(ctx context.Context, userID string, p *models.Product) error {
	if err := s.ownable(ctx, "update product", "product", userID, p.ID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE product
		SET name = $1, brand = $2, calories_per_100g = $3, protein_per_100g = $4,
		    carbs_per_100g = $5, fat_per_100g = $6
		WHERE id = $7 AND user_id = $8
	`, p.Name, p.Brand, p.CaloriesPer100g, p.ProteinPer100g, p.CarbsPer100g, p.FatPer100g, p.ID, userID)
	if err != nil {
		return s.fail("update product", err)
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, userID, id string) error {
	if err := s.ownable(ctx, "delete product", "product", userID, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM product WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return s.fail("delete product", err)
	}
	return nil
}

// Exercises

func (s *Store) ListExercises(ctx context.Context, userID string, opts ListOptions) ([]models.Exercise, error) {
	w := &where{}
	visible(w, userID)
	search(w, opts)
	query := `SELECT ` + exerciseColumns + ` FROM exercise` + w.String() +
		` ORDER BY name, id` + w.page(opts)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, s.fail("list exercises", err)
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, s.fail("list exercises", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list exercises", err)
	}
	return exercises, nil
}

func (s *Store) GetExercise(ctx context.Context, userID, id string) (models.Exercise, error) {
	w := &where{}
	w.add("id = ?", id)
	visible(w, userID)
	e, err := scanExercise(s.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercise`+w.String(), w.args...))
	if err != nil {
		return e, s.fail("get exercise", err)
	}
	return e, nil
}

func (s *Store) CreateExercise(ctx context.Context, e *models.Exercise) error {
	e.ID = uuid.NewString()
	e.IsDefault = false
	e.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exercise (`+exerciseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, nullableString(e.UserID), e.Name, e.Category, e.Description, e.IsDefault, e.CreatedAt)
	if err != nil {
		return s.fail("create exercise", err)
	}
	return nil
}

func (s *Store) UpdateExercise(ctx context.Context, userID string, e *models.Exercise) error {
	if err := s.ownable(ctx, "update exercise", "exercise", userID, e.ID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE exercise SET name = $1, category = $2, description = $3
		WHERE id = $4 AND user_id = $5
	`, e.Name, e.Category, e.Description, e.ID, userID)
	if err != nil {
		return s.fail("update exercise", err)
	}
	return nil
}

func (s *Store) DeleteExercise(ctx context.Context, userID, id string) error {
	if err := s.ownable(ctx, "delete exercise", "exercise", userID, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM exercise WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return s.fail("delete exercise", err)
	}
	return nil
}
