package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/spark-api/internal/api"
	apiMiddleware "github.com/phrazzld/spark-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	generationHandler := api.NewGenerationHandler(app.sessions, app.logger)
	statsHandler := api.NewStatsHandler(app.eventCounter, app.sessions)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", generationHandler.Generate)
		r.Get("/sessions/{id}", generationHandler.GetSession)
		r.Get("/stats", statsHandler.GetStats)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
