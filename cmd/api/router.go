package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/FACorreiaa/statement-importer/pkg/interceptors"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterDeps are the pieces the HTTP router needs.
type RouterDeps struct {
	AllowedOrigins     []string
	RateLimitPerSecond int
	RateLimitBurst     int
	Tokens             *interceptors.TokenVerifier
	Health             HealthChecker
	Me                 http.HandlerFunc
	ImportPDF          http.HandlerFunc
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

// NewRouter builds the API routes: public health and metrics, and the
// authenticated /api group.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if d.Health != nil {
			if err := d.Health.Health(ctx); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(interceptors.RateLimit(d.RateLimitPerSecond, d.RateLimitBurst))
		r.Use(interceptors.Authenticate(d.Tokens))
		r.Get("/me", d.Me)
		r.Post("/expenses/import/pdf", d.ImportPDF)
	})

	return r
}
