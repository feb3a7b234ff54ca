package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matveyg/eisenhower-api/internal/api"
	apiMiddleware "github.com/matveyg/eisenhower-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // trace IDs for improved error handling
	r.Use(apiMiddleware.Metrics)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	statsHandler := api.NewStatsHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account endpoints
			r.Get("/auth/me", authHandler.Me)
			r.Patch("/auth/change-password", authHandler.ChangePassword)

			// Task endpoints
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/search", taskHandler.Search)
			r.Get("/tasks/due-today", taskHandler.DueToday)
			r.Get("/tasks/quadrant/{quadrant}", taskHandler.ListByQuadrant)
			r.Get("/tasks/status/{status}", taskHandler.ListByStatus)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Patch("/tasks/{id}", taskHandler.Update)
			r.Post("/tasks/{id}/complete", taskHandler.Complete)
			r.Delete("/tasks/{id}", taskHandler.Delete)

			// Stats endpoints
			r.Get("/stats", statsHandler.Summary)
			r.Get("/stats/deadlines", statsHandler.DeadlineReport)

			// Administrative endpoints
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)
				r.Get("/auth/admin/users", authHandler.ListUsers)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
