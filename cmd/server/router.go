package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/RuanLopes1350/AnotaAi/internal/api/middleware"
	"github.com/RuanLopes1350/AnotaAi/internal/api/shared"
)

// setupRouter creates the router with the middleware chain and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Recoverer)
	r.Use(apiMiddleware.SecurityHeaders)
	r.Use(app.metrics.Middleware)
	if app.limiter != nil {
		r.Use(app.limiter.Middleware)
	}
	r.Use(middleware.Compress(5))

	// An unsupported method on a known path is reported as an unknown route.
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	// Public routes
	r.Get("/health", app.health)
	r.Handle("/metrics", app.metrics.Handler())
	r.Post("/users", app.userHandler.CreateUser)
	r.Post("/auth/reset-secret", app.authHandler.ResetSecret)
	if app.jwtService != nil {
		r.Post("/auth/login", app.authHandler.Login)
	}

	// Protected when bearer authentication is configured
	r.Group(func(r chi.Router) {
		if app.jwtService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
		}

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", app.taskHandler.CreateTask)
			r.Get("/", app.taskHandler.ListTasks)
			r.Get("/titulo/{titulo}", app.taskHandler.FindTaskByTitle)
			r.Get("/status/{status}", app.taskHandler.FindTasksByStatus)
			r.Get("/dataLimite/{dataLimite}", app.taskHandler.FindTasksByDueDate)
			r.Patch("/{id}", app.taskHandler.UpdateTask)
			r.Delete("/{id}", app.taskHandler.DeleteTask)
		})

		r.Get("/users", app.userHandler.ListUsers)
		r.Patch("/users/{id}", app.userHandler.UpdateUser)
		r.Delete("/users/{id}", app.userHandler.DeleteUser)
	})

	return r
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, "route not found")
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}
