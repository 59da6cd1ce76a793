// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/middleware"
	"github.com/danielhkuo/fitlog/models"
	"github.com/danielhkuo/fitlog/summary"
)

const mealConflict = "Meals are already logged for this date"

type MealHandler struct {
	store  *db.Store
	cache  *summary.Cache
	logger *zap.Logger
}

func NewMealHandler(store *db.Store, cache *summary.Cache, logger *zap.Logger) *MealHandler {
	return &MealHandler{store: store, cache: cache, logger: logger}
}

// resolveSlots fills in catalog nutrition for every product that names a
// product_id. Unknown products become field errors.
func (h *MealHandler) resolveSlots(ctx context.Context, userID string, slots map[string]*models.MealSlot) (map[string]string, error) {
	details := map[string]string{}
	for name, slot := range slots {
		if slot == nil {
			continue
		}
		if slot.Description == "" && len(slot.Products) == 0 {
			details[name] = "needs a description or at least one product"
			continue
		}
		for i, p := range slot.Products {
			field := fmt.Sprintf("%s.products[%d]", name, i)
			if p.ProductID == "" {
				if p.Name == "" {
					details[field+".name"] = "is required"
				}
				continue
			}
			product, err := h.store.GetProduct(ctx, userID, p.ProductID)
			if errors.Is(err, db.ErrNotFound) {
				details[field+".product_id"] = "is not a known product"
				continue
			}
			if err != nil {
				return nil, err
			}
			slot.Products[i] = models.DeriveMealProduct(product, p.QuantityGrams)
		}
	}
	return details, nil
}

// List handles GET /api/meals
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, details := listOptions(r)
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Invalid query", details)
		return
	}

	meals, err := h.store.ListMeals(r.Context(), middleware.UserID(r.Context()), opts)
	if err != nil {
		storeError(w, h.logger, err, "Meal", mealConflict)
		return
	}
	listResponse(w, meals, opts)
}

// Create handles POST /api/meals
func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMealRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	details, err := h.resolveSlots(r.Context(), userID, map[string]*models.MealSlot{
		"breakfast": req.Breakfast,
		"lunch":     req.Lunch,
		"snack":     req.Snack,
		"dinner":    req.Dinner,
	})
	if err != nil {
		storeError(w, h.logger, err, "Product", mealConflict)
		return
	}
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Validation failed", details)
		return
	}

	meal := models.Meal{
		UserID:      userID,
		MealDate:    req.MealDate,
		Breakfast:   req.Breakfast,
		Lunch:       req.Lunch,
		Snack:       req.Snack,
		Dinner:      req.Dinner,
		WaterLiters: req.WaterLiters,
		Notes:       req.Notes,
	}
	if err := h.store.CreateMeal(r.Context(), &meal); err != nil {
		storeError(w, h.logger, err, "Meal", mealConflict)
		return
	}
	h.cache.Invalidate(userID)

	h.logger.Info("meal created", zap.String("user_id", userID), zap.String("date", meal.MealDate))
	middleware.JSONResponse(w, http.StatusCreated, meal)
}

// Get handles GET /api/meals/{id}
func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	meal, err := h.store.GetMeal(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Meal", mealConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, meal)
}

// Update handles PATCH /api/meals/{id}. A slot sent as null is cleared.
func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMealRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	meal, err := h.store.GetMeal(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Meal", mealConflict)
		return
	}

	changed := map[string]*models.MealSlot{}
	for name, s := range map[string]struct {
		in  models.Optional[models.MealSlot]
		out **models.MealSlot
	}{
		"breakfast": {req.Breakfast, &meal.Breakfast},
		"lunch":     {req.Lunch, &meal.Lunch},
		"snack":     {req.Snack, &meal.Snack},
		"dinner":    {req.Dinner, &meal.Dinner},
	} {
		if s.in.Set {
			*s.out = s.in.Value
			changed[name] = s.in.Value
		}
	}

	details, err := h.resolveSlots(r.Context(), userID, changed)
	if err != nil {
		storeError(w, h.logger, err, "Product", mealConflict)
		return
	}
	if req.WaterLiters.Set {
		if v := req.WaterLiters.Value; v != nil && (*v < 0 || *v > 20) {
			details["water_liters"] = "is out of range"
		}
		meal.WaterLiters = req.WaterLiters.Value
	}
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Validation failed", details)
		return
	}

	if req.MealDate != nil {
		meal.MealDate = *req.MealDate
	}
	if req.Notes != nil {
		meal.Notes = *req.Notes
	}

	if err := h.store.UpdateMeal(r.Context(), &meal); err != nil {
		storeError(w, h.logger, err, "Meal", mealConflict)
		return
	}
	h.cache.Invalidate(userID)
	middleware.JSONResponse(w, http.StatusOK, meal)
}

// Delete handles DELETE /api/meals/{id}
func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteMeal(r.Context(), userID, id); err != nil {
		storeError(w, h.logger, err, "Meal", mealConflict)
		return
	}
	h.cache.Invalidate(userID)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Deleted: id})
}
