package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"infinite-experiment/airclock/internal/common"
	reqctx "infinite-experiment/airclock/internal/context"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/models/entities"
	"infinite-experiment/airclock/internal/temporal"

	"github.com/go-chi/chi/v5"
)

// GetTemporalProfile handles GET /api/v1/airports/{icao}/temporal
func (h *Handlers) GetTemporalProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		icao := entities.NormalizeICAO(chi.URLParam(r, "icao"))
		if icao == "" {
			common.RespondError(w, initTime, nil, "Missing airport identifier", http.StatusBadRequest)
			return
		}

		profile, err := h.deps.Services.Temporal.GetProfile(r.Context(), icao)
		if err != nil {
			logging.WithRequest(reqctx.GetRequestID(r.Context()), "temporal_profile").Errorw("Temporal profile failed",
				"icao", icao,
				"directory_unavailable", errors.Is(err, temporal.ErrDirectoryUnavailable),
				"error", err,
			)
			common.RespondError(w, initTime, nil, "Failed to assemble temporal profile", http.StatusInternalServerError)
			return
		}
		if profile == nil {
			common.RespondError(w, initTime, nil, fmt.Sprintf("Airport %s not found", icao), http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Temporal profile assembled", profile)
	}
}
