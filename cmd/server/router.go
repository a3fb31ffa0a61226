package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mindcredit/mindcredit-api/internal/api"
	apiMiddleware "github.com/mindcredit/mindcredit-api/internal/api/middleware"
	"github.com/mindcredit/mindcredit-api/internal/api/shared"
)

// setupRouter builds the HTTP router. Everything under /api requires basic
// auth; /health does not.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", shared.TraceIDHeader},
		ExposedHeaders:   []string{shared.TraceIDHeader},
		AllowCredentials: false,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authenticator)
	creditLimitHandler := api.NewCreditLimitHandler(app.creditLimitService, app.logger)
	signalHandler := api.NewSignalHandler(app.eventEmitter, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/credit-limit/calculate", creditLimitHandler.Calculate)
		r.Patch("/credit-limit/deploy", creditLimitHandler.Deploy)
		r.Post("/brain-data/{type}", signalHandler.Publish)
		r.Get("/users/{id}/credit-limits", creditLimitHandler.ListForUser)
	})

	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}
	r.Method(http.MethodGet, "/health", api.NewHealthHandler(pinger, app.logger))

	return r
}
