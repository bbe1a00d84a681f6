package api

import (
	"fmt"
	"net/http"
	"time"

	"infinite-experiment/airclock/internal/auth"
	"infinite-experiment/airclock/internal/common"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/models/entities"
	gormModels "infinite-experiment/airclock/internal/models/gorm"

	"github.com/go-chi/chi/v5"
)

// GetAirport handles GET /api/v1/airports/{icao}. The record is served
// through the reference cache; an unknown 3-letter code is retried as IATA.
func (h *Handlers) GetAirport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		icao := entities.NormalizeICAO(chi.URLParam(r, "icao"))
		if icao == "" {
			common.RespondError(w, initTime, nil, "Missing airport identifier", http.StatusBadRequest)
			return
		}

		refs := h.deps.Services.Temporal.References()
		record, err := refs.Fetch(r.Context(), icao)
		if err == nil && record == nil && len(icao) == 3 && h.deps.Repo.Airports != nil {
			var airport *gormModels.Airport
			airport, err = h.deps.Repo.Airports.FindByIATA(r.Context(), icao)
			if err == nil && airport != nil {
				record, err = refs.Fetch(r.Context(), airport.ICAO)
			}
		}
		if err != nil {
			logging.Error("Airport lookup failed", "icao", icao, "error", err)
			common.RespondError(w, initTime, nil, "Failed to look up airport", http.StatusInternalServerError)
			return
		}
		if record == nil {
			common.RespondError(w, initTime, nil, fmt.Sprintf("Airport %s not found", icao), http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Airport found", record)
	}
}

// SyncAirports handles POST /api/v1/admin/sync-airports
func (h *Handlers) SyncAirports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetAdminClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if h.deps.Services.AirportSync == nil {
			common.RespondError(w, initTime, nil, "Airport sync is not configured", http.StatusServiceUnavailable)
			return
		}

		result, err := h.deps.Services.AirportSync.RunOnce(r.Context(), claims.Subject)
		if err != nil {
			common.RespondError(w, initTime, nil, "Failed to sync airports: "+err.Error(), http.StatusBadGateway)
			return
		}

		common.RespondSuccess(w, initTime, "Airports synced successfully", result)
	}
}
