// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/danielhkuo/fitlog/assign"
	"github.com/danielhkuo/fitlog/auth"
	"github.com/danielhkuo/fitlog/cliparse"
	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/handlers"
	"github.com/danielhkuo/fitlog/middleware"
	"github.com/danielhkuo/fitlog/summary"
)

// Services are the long-lived collaborators shared by every handler.
type Services struct {
	Store    *db.Store
	Executor *assign.Executor
	Critic   handlers.Critic
	Logger   *zap.Logger
}

func NewRouter(cfg cliparse.Config, svc Services) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithLogging(svc.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize handlers
	loader := summary.NewLoader(svc.Store)
	cache := summary.NewCache(loader)
	verifier := auth.NewVerifier(cfg.JWTSecret)

	sessionHandler := handlers.NewSessionHandler(verifier)
	sleepHandler := handlers.NewSleepHandler(svc.Store, cache, svc.Logger)
	mealHandler := handlers.NewMealHandler(svc.Store, cache, svc.Logger)
	routineHandler := handlers.NewRoutineHandler(svc.Store, cache, svc.Logger)
	templateHandler := handlers.NewTemplateHandler(svc.Store, cache, svc.Executor, svc.Logger)
	catalogHandler := handlers.NewCatalogHandler(svc.Store, svc.Logger)
	dayHandler := handlers.NewDayHandler(loader, cache, svc.Critic, svc.Logger)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Session validity, answered with or without a token
		r.Get("/session", sessionHandler.GetSession)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(verifier))

			r.Route("/sleep", func(r chi.Router) {
				r.Get("/", sleepHandler.List)
				r.Post("/", sleepHandler.Create)
				r.Get("/{id}", sleepHandler.Get)
				r.Patch("/{id}", sleepHandler.Update)
				r.Delete("/{id}", sleepHandler.Delete)
			})

			r.Route("/meals", func(r chi.Router) {
				r.Get("/", mealHandler.List)
				r.Post("/", mealHandler.Create)
				r.Get("/{id}", mealHandler.Get)
				r.Patch("/{id}", mealHandler.Update)
				r.Delete("/{id}", mealHandler.Delete)
			})

			r.Route("/routines", func(r chi.Router) {
				r.Get("/", routineHandler.List)
				r.Post("/", routineHandler.Create)
				r.Get("/{id}", routineHandler.Get)
				r.Patch("/{id}", routineHandler.Update)
				r.Delete("/{id}", routineHandler.Delete)
			})

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", templateHandler.List)
				r.Post("/", templateHandler.Create)
				r.Get("/{id}", templateHandler.Get)
				r.Patch("/{id}", templateHandler.Update)
				r.Delete("/{id}", templateHandler.Delete)
				r.Post("/{id}/assign", templateHandler.Assign)
				r.Post("/{id}/assign-recurring", templateHandler.AssignRecurring)
			})

			// Catalogs: shared defaults plus the caller's own entries
			r.Route("/products", func(r chi.Router) {
				r.Get("/", catalogHandler.ListProducts)
				r.Post("/", catalogHandler.CreateProduct)
				r.Patch("/{id}", catalogHandler.UpdateProduct)
				r.Delete("/{id}", catalogHandler.DeleteProduct)
			})
			r.Route("/exercises", func(r chi.Router) {
				r.Get("/", catalogHandler.ListExercises)
				r.Post("/", catalogHandler.CreateExercise)
				r.Patch("/{id}", catalogHandler.UpdateExercise)
				r.Delete("/{id}", catalogHandler.DeleteExercise)
			})

			// Aggregated read side
			r.Get("/days/{date}", dayHandler.GetDay)
			r.Get("/days/{date}/export", dayHandler.ExportDay)
			r.Post("/days/{date}/critique", dayHandler.Critique)
			r.Get("/export", dayHandler.ExportRange)
			r.Get("/calendar", dayHandler.Calendar)
		})
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fitlog API v1"))
	})

	return r
}
