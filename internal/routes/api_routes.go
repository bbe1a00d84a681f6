package routes

import (
	"infinite-experiment/airclock/internal/api"
	"infinite-experiment/airclock/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies, limiter *middleware.RateLimiter) {
	r.Route("/api/v1", func(v1 chi.Router) {
		if deps.Metrics != nil {
			v1.Use(middleware.InFlightMiddleware(deps.Metrics, "/api/v1"))
		}

		// Public airport routes, rate limited per client IP
		v1.Group(func(public chi.Router) {
			public.Use(limiter.Middleware)
			public.Get("/airports/{icao}", handlers.GetAirport())
			public.Get("/airports/{icao}/temporal", handlers.GetTemporalProfile())
		})

		// Admin routes require an admin JWT
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.AdminAuthMiddleware(deps.AdminSecret))

			admin.Get("/temporal/cache", handlers.GetCacheStats())
			admin.Delete("/temporal/cache", handlers.ClearCaches())
			admin.Post("/sync-airports", handlers.SyncAirports())
		})
	})
}
