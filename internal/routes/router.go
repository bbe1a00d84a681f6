package routes

import (
	"net/http"
	"time"

	"infinite-experiment/airclock/internal/api"
	"infinite-experiment/airclock/internal/config"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RegisterRoutes builds the chi router over already-initialized dependencies
func RegisterRoutes(deps *api.Dependencies, httpCfg config.HTTPConfig, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   httpCfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps.Health, upSince))

	handlers := api.NewHandlers(deps)
	limiter := middleware.NewRateLimiter(httpCfg.RateLimitRPS, httpCfg.RateLimitBurst)

	RegisterAPIRoutes(r, handlers, deps, limiter)

	return r
}
