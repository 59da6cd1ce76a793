// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/danielhkuo/fitlog/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults is the shared catalog loaded from defaults.yaml.
type Defaults struct {
	Products  []models.Product  `yaml:"products"`
	Exercises []models.Exercise `yaml:"exercises"`
}

// LoadDefaults parses the embedded catalog.
func LoadDefaults() (Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return d, fmt.Errorf("parse defaults: %w", err)
	}
	return d, nil
}

// SeedDefaults inserts the shared products and exercises. Existing rows are
// left untouched so it can run on every start.
func (s *Store) SeedDefaults(ctx context.Context) error {
	d, err := LoadDefaults()
	if err != nil {
		return err
	}
	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	defer tx.Rollback()

	for _, p := range d.Products {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO product (`+productColumns+`)
			VALUES ($1, NULL, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.Name, p.Brand, p.CaloriesPer100g, p.ProteinPer100g, p.CarbsPer100g, p.FatPer100g, true, now)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}

	for _, e := range d.Exercises {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO exercise (`+exerciseColumns+`)
			VALUES ($1, NULL, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, e.ID, e.Name, e.Category, e.Description, true, now)
		if err != nil {
			return fmt.Errorf("seed exercise %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}

	s.logger.Info("seeded default catalog",
		zap.Int("products", len(d.Products)),
		zap.Int("exercises", len(d.Exercises)))
	return nil
}
