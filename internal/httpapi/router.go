// Package httpapi exposes the report pipeline over HTTP.
package httpapi

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/naka-gawa/devinsight/internal/domain"
)

// ReportService builds the report for one identity.
type ReportService interface {
	Report(ctx context.Context, username string) (*domain.Report, error)
}

// NewRouter wires routes and middleware.
func NewRouter(svc ReportService, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	reports := &ReportHandlers{svc: svc, logger: logger}

	r.Get("/health", HealthHandler)

	r.Route("/api/github", func(r chi.Router) {
		r.Get("/", reports.MissingUsername)
		r.Get("/{username}", reports.GetReport)
	})

	return r
}
