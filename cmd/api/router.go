package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/handler"
	"github.com/vaultpass/passgen/internal/metrics"
	"github.com/vaultpass/passgen/internal/middleware"
)

// newRouter wires the HTTP surface. provider may be nil when metrics are disabled.
func newRouter(ctx context.Context, cfg config.Config, genHandler *handler.GeneratorHandler, provider *metrics.Provider) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	if provider != nil {
		r.Use(metrics.HTTPMiddleware(provider.MeterProvider(), cfg.MetricsNamespace))
		r.Method(http.MethodGet, "/metrics", provider.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		// Auth runs first so authenticated clients are limited by subject.
		if cfg.AuthEnabled {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
		}
		if cfg.RateLimitEnabled {
			r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		}
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/strength", genHandler.HandleStrength)
	})

	return r
}
