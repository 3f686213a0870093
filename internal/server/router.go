// Package server wires the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inflatable-compliance/internal/calculator"
	"inflatable-compliance/internal/handlers"
	"inflatable-compliance/internal/inspection"
	"inflatable-compliance/internal/observability"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r)
	inspection.RegisterRoutes(r)

	return r
}
