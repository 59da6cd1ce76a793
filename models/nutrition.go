// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "math"

type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

func (n Nutrition) Rounded() Nutrition {
	return Nutrition{
		Calories: round2(n.Calories),
		Protein:  round2(n.Protein),
		Carbs:    round2(n.Carbs),
		Fat:      round2(n.Fat),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DeriveMealProduct scales the per-100g values of a catalog product to the
// eaten quantity.
func DeriveMealProduct(p Product, grams float64) MealProduct {
	factor := grams / 100
	return MealProduct{
		ProductID:     p.ID,
		Name:          p.Name,
		QuantityGrams: grams,
		Calories:      round2(p.CaloriesPer100g * factor),
		Protein:       round2(p.ProteinPer100g * factor),
		Carbs:         round2(p.CarbsPer100g * factor),
		Fat:           round2(p.FatPer100g * factor),
	}
}

func (mp MealProduct) Nutrition() Nutrition {
	return Nutrition{Calories: mp.Calories, Protein: mp.Protein, Carbs: mp.Carbs, Fat: mp.Fat}
}

// Totals sums the products of a slot. Free-text slots contribute nothing.
func (s *MealSlot) Totals() Nutrition {
	var total Nutrition
	if s == nil {
		return total
	}
	for _, p := range s.Products {
		total = total.Add(p.Nutrition())
	}
	return total
}

// Totals sums every present slot of the meal.
func (m *Meal) Totals() Nutrition {
	var total Nutrition
	for _, slot := range m.Slots() {
		total = total.Add(slot.Totals())
	}
	return total.Rounded()
}
