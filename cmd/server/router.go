package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tickler/internal/api"
	apiMiddleware "github.com/phrazzld/tickler/internal/api/middleware"
	"github.com/phrazzld/tickler/internal/app"
	"github.com/rs/cors"
)

// setupRouter creates and configures the application router with all routes and middleware.
func setupRouter(a *app.Application) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(a.Logger.Handler(), slog.LevelDebug),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(a.Logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: a.Config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader, "Location"},
	}).Handler)

	taskHandler := api.NewTaskHandler(a.ReminderService)

	r.Route("/api", func(r chi.Router) {
		if a.JWTService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(a.JWTService).Authenticate)
		}

		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)

		r.Post("/reminders/check", taskHandler.CheckReminders)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			a.Logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
