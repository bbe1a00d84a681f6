package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"infinite-experiment/airclock/internal/db"
	"infinite-experiment/airclock/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(checks map[string]HealthCheck, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus, len(checks))
		overallStatus := "ok"

		for name, check := range checks {
			details, err := check(ctx)
			if err != nil {
				overallStatus = "down"
				services[name] = entities.ServiceStatus{Status: "down", Details: err.Error()}
				continue
			}
			services[name] = entities.ServiceStatus{Status: "ok", Details: details}
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// PostgresHealthCheck pings through sqlx and reports the directory size
func PostgresHealthCheck(conn *sqlx.DB) HealthCheck {
	return func(ctx context.Context) (string, error) {
		if err := conn.PingContext(ctx); err != nil {
			return "", err
		}
		count, err := db.CountAirports(ctx, conn)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Postgres connected, %d airports", count), nil
	}
}
