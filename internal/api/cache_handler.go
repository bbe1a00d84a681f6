package api

import (
	"net/http"
	"time"

	"infinite-experiment/airclock/internal/auth"
	"infinite-experiment/airclock/internal/common"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/models/dtos"
	"infinite-experiment/airclock/internal/temporal"
)

// GetCacheStats handles GET /api/v1/admin/temporal/cache
func (h *Handlers) GetCacheStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		common.RespondSuccess(w, initTime, "Temporal cache stats", h.cacheStats())
	}
}

// ClearCaches handles DELETE /api/v1/admin/temporal/cache
func (h *Handlers) ClearCaches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		before := h.cacheStats()
		h.deps.Services.Temporal.References().Clear()
		h.deps.Services.Temporal.Solar().Clear()

		subject := ""
		if claims := auth.GetAdminClaims(r.Context()); claims != nil {
			subject = claims.Subject
		}
		logging.Info("Temporal caches cleared",
			"by", subject,
			"reference_entries", before.Reference.Entries,
			"solar_entries", before.Solar.Entries,
		)

		common.RespondSuccess(w, initTime, "Temporal caches cleared", h.cacheStats())
	}
}

func (h *Handlers) cacheStats() dtos.CacheStatsResponse {
	assembler := h.deps.Services.Temporal
	return dtos.CacheStatsResponse{
		Reference: counters(assembler.References().Stats()),
		Solar:     counters(assembler.Solar().Stats()),
		Backend:   h.deps.CacheBackend,
		Algorithm: assembler.Solar().Algorithm(),
	}
}

func counters(s temporal.CacheStats) dtos.CacheCounters {
	return dtos.CacheCounters{Hits: s.Hits, Misses: s.Misses, Entries: s.Entries}
}
