package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-sim/internal/health"
	"github.com/noah-isme/toko-sim/internal/obs"
	"github.com/noah-isme/toko-sim/internal/security"
	"github.com/noah-isme/toko-sim/internal/shop"
)

type routerDeps struct {
	Logger      zerolog.Logger
	HTTPMetrics *obs.HTTPMetrics
	Metrics     http.Handler
	Origins     []string
	Health      *health.Handler
	Shop        *shop.Handler
	Write       []func(http.Handler) http.Handler
	Security    security.Headers
	MaxBody     int64
	TrustProxy  bool
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if d.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(d.Security.Middleware)
	if d.HTTPMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: d.HTTPMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: d.Logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(d.Origins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Idempotency-Key", "X-Request-Id"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:         300,
	}))

	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}
	r.Get("/health/live", d.Health.Live)
	r.Get("/health/ready", d.Health.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(obs.RoutePatternMiddleware)
		v.Use(security.BodyLimit{Max: d.MaxBody}.Middleware)
		d.Shop.Routes(v, d.Write...)
	})
	return r
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
