package middleware

import (
	"net/http"
	"strings"
	"time"

	"infinite-experiment/airclock/internal/auth"
	"infinite-experiment/airclock/internal/common"
	reqctx "infinite-experiment/airclock/internal/context"
	"infinite-experiment/airclock/internal/logging"
)

// AdminAuthMiddleware requires a bearer token signed with secret and
// carrying the admin role. With no secret configured the admin API is off.
func AdminAuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			if len(secret) == 0 {
				common.RespondError(w, initTime, nil, "Admin API disabled: no admin secret configured", http.StatusServiceUnavailable)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondError(w, initTime, nil, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseAdminToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logging.Warn("Admin token rejected",
					"request_id", reqctx.GetRequestID(r.Context()),
					"error", err,
				)
				common.RespondError(w, initTime, nil, "Unauthorized. Invalid admin token", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetAdminClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
