// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/fitlog/models"
	"github.com/danielhkuo/fitlog/testutil"
)

func TestCreateMealDerivesNutrition(t *testing.T) {
	env := setupTestEnv(t)

	req := models.CreateMealRequest{
		MealDate: "2024-03-15",
		Breakfast: &models.MealSlot{Products: []models.MealProduct{
			{ProductID: "default-rolled-oats", QuantityGrams: 80, Calories: 1},
		}},
		Dinner: &models.MealSlot{Products: []models.MealProduct{
			{ProductID: "default-chicken-breast", QuantityGrams: 150},
			{Name: "Homemade sauce", QuantityGrams: 30, Calories: 60, Fat: 5},
		}},
	}

	w := httptest.NewRecorder()
	env.meals.Create(w, authed("POST", "/api/meals", req, "alice"))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var meal models.Meal
	testutil.AssertJSON(t, w, &meal)

	oats := meal.Breakfast.Products[0]
	if oats.Name != "Rolled oats" || oats.Calories != 311.2 || oats.Protein != 13.52 {
		t.Errorf("Unexpected derived oats: %+v", oats)
	}
	if meal.Lunch != nil || meal.Snack != nil {
		t.Error("Expected absent slots to stay null")
	}

	totals := meal.Totals()
	if totals.Calories != 311.2+247.5+60 {
		t.Errorf("Expected total calories %v, got %v", 311.2+247.5+60, totals.Calories)
	}
}

func TestCreateMealValidation(t *testing.T) {
	env := setupTestEnv(t)
	testutil.CreateTestMeal(t, env.store, "alice", "2024-03-15")

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		detail         string
	}{
		{
			name: "unknown product",
			requestBody: models.CreateMealRequest{
				MealDate: "2024-03-16",
				Lunch: &models.MealSlot{Products: []models.MealProduct{
					{ProductID: "nope", QuantityGrams: 10},
				}},
			},
			expectedStatus: http.StatusBadRequest,
			detail:         "lunch.products[0].product_id",
		},
		{
			name: "empty slot",
			requestBody: models.CreateMealRequest{
				MealDate: "2024-03-16",
				Snack:    &models.MealSlot{},
			},
			expectedStatus: http.StatusBadRequest,
			detail:         "snack",
		},
		{
			name: "zero quantity",
			requestBody: models.CreateMealRequest{
				MealDate: "2024-03-16",
				Lunch: &models.MealSlot{Products: []models.MealProduct{
					{ProductID: "default-banana", QuantityGrams: 0},
				}},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "negative free-text nutrition",
			requestBody: models.CreateMealRequest{
				MealDate: "2024-03-16",
				Dinner: &models.MealSlot{Products: []models.MealProduct{
					{Name: "mystery stew", QuantityGrams: 300, Calories: -250},
				}},
			},
			expectedStatus: http.StatusBadRequest,
			detail:         "dinner.products[0].calories",
		},
		{
			name: "second meal on a day",
			requestBody: models.CreateMealRequest{
				MealDate:  "2024-03-15",
				Breakfast: &models.MealSlot{Description: "toast"},
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			env.meals.Create(w, authed("POST", "/api/meals", tt.requestBody, "alice"))
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.detail != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Details[tt.detail] == "" {
					t.Errorf("Expected detail for %s, got %v", tt.detail, resp.Details)
				}
			}
		})
	}
}

func TestUpdateMealSlots(t *testing.T) {
	env := setupTestEnv(t)
	meal := testutil.CreateTestMeal(t, env.store, "alice", "2024-03-15")

	// lunch is set, breakfast cleared, water untouched
	body := map[string]interface{}{
		"breakfast": nil,
		"lunch": map[string]interface{}{
			"products": []map[string]interface{}{{"product_id": "default-banana", "quantity_grams": 120}},
		},
	}
	w := httptest.NewRecorder()
	env.meals.Update(w, authed("PATCH", "/api/meals/"+meal.ID, body, "alice", "id", meal.ID))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	env.meals.Get(w, authed("GET", "/api/meals/"+meal.ID, nil, "alice", "id", meal.ID))
	testutil.AssertStatus(t, w, http.StatusOK)

	var got models.Meal
	testutil.AssertJSON(t, w, &got)
	if got.Breakfast != nil {
		t.Errorf("Expected breakfast cleared, got %+v", got.Breakfast)
	}
	if got.Lunch == nil || len(got.Lunch.Products) != 1 || got.Lunch.Products[0].Name != "Banana" {
		t.Fatalf("Expected derived banana lunch, got %+v", got.Lunch)
	}

	w = httptest.NewRecorder()
	env.meals.Update(w, authed("PATCH", "/api/meals/"+meal.ID, map[string]interface{}{"water_liters": 40}, "alice", "id", meal.ID))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	negative := map[string]interface{}{
		"snack": map[string]interface{}{
			"products": []map[string]interface{}{{"name": "bar", "quantity_grams": 40, "fat": -3}},
		},
	}
	w = httptest.NewRecorder()
	env.meals.Update(w, authed("PATCH", "/api/meals/"+meal.ID, negative, "alice", "id", meal.ID))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = httptest.NewRecorder()
	env.meals.Delete(w, authed("DELETE", "/api/meals/"+meal.ID, nil, "alice", "id", meal.ID))
	testutil.AssertStatus(t, w, http.StatusOK)
}
