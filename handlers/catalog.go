// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/middleware"
	"github.com/danielhkuo/fitlog/models"
)

const catalogConflict = "A catalog entry with this id already exists"

// CatalogHandler serves products and exercises. Lists include the shared
// defaults; only the caller's own entries can be changed.
type CatalogHandler struct {
	store  *db.Store
	logger *zap.Logger
}

func NewCatalogHandler(store *db.Store, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{store: store, logger: logger}
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, details := listOptions(r)
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Invalid query", details)
		return
	}

	products, err := h.store.ListProducts(r.Context(), middleware.UserID(r.Context()), opts)
	if err != nil {
		storeError(w, h.logger, err, "Product", catalogConflict)
		return
	}
	listResponse(w, products, opts)
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	p := models.Product{
		UserID:          &userID,
		Name:            req.Name,
		Brand:           req.Brand,
		CaloriesPer100g: req.CaloriesPer100g,
		ProteinPer100g:  req.ProteinPer100g,
		CarbsPer100g:    req.CarbsPer100g,
		FatPer100g:      req.FatPer100g,
	}
	if err := h.store.CreateProduct(r.Context(), &p); err != nil {
		storeError(w, h.logger, err, "Product", catalogConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, p)
}

// UpdateProduct handles PATCH /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	p, err := h.store.GetProduct(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Product", catalogConflict)
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.CaloriesPer100g != nil {
		p.CaloriesPer100g = *req.CaloriesPer100g
	}
	if req.ProteinPer100g != nil {
		p.ProteinPer100g = *req.ProteinPer100g
	}
	if req.CarbsPer100g != nil {
		p.CarbsPer100g = *req.CarbsPer100g
	}
	if req.FatPer100g != nil {
		p.FatPer100g = *req.FatPer100g
	}

	if err := h.store.UpdateProduct(r.Context(), userID, &p); err != nil {
		storeError(w, h.logger, err, "Product", catalogConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/products/{id}. Meals keep the nutrition
// already copied from the product.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteProduct(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		storeError(w, h.logger, err, "Product", catalogConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Deleted: id})
}

// ListExercises handles GET /api/exercises
func (h *CatalogHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	opts, details := listOptions(r)
	if len(details) > 0 {
		middleware.ValidationResponse(w, "Invalid query", details)
		return
	}

	exercises, err := h.store.ListExercises(r.Context(), middleware.UserID(r.Context()), opts)
	if err != nil {
		storeError(w, h.logger, err, "Exercise", catalogConflict)
		return
	}
	listResponse(w, exercises, opts)
}

// CreateExercise handles POST /api/exercises
func (h *CatalogHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExerciseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	e := models.Exercise{
		UserID:      &userID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := h.store.CreateExercise(r.Context(), &e); err != nil {
		storeError(w, h.logger, err, "Exercise", catalogConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, e)
}

// UpdateExercise handles PATCH /api/exercises/{id}
func (h *CatalogHandler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateExerciseRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	userID := middleware.UserID(r.Context())
	e, err := h.store.GetExercise(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, h.logger, err, "Exercise", catalogConflict)
		return
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Description != nil {
		e.Description = *req.Description
	}

	if err := h.store.UpdateExercise(r.Context(), userID, &e); err != nil {
		storeError(w, h.logger, err, "Exercise", catalogConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, e)
}

// DeleteExercise handles DELETE /api/exercises/{id}
func (h *CatalogHandler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteExercise(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		storeError(w, h.logger, err, "Exercise", catalogConflict)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Deleted: id})
}
