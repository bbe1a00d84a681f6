package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"infinite-experiment/airclock/internal/auth"
	reqctx "infinite-experiment/airclock/internal/context"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func init() {
	logging.SetLogger(zap.NewNop().Sugar())
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqctx.GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("Expected a generated request ID in context")
	}
	if got := rr.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("Expected header %s, got %s", seen, got)
	}
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	handler := RequestIDMiddleware(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected abc-123, got %s", got)
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	handler := limiter.Middleware(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after burst, got %d", codes[2])
	}

	// Other clients have their own bucket
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.1:4444"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected separate bucket per IP, got %d", rr.Code)
	}
}

func TestRateLimiter_WhitelistsLoopback(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	handler := limiter.Middleware(okHandler)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected loopback to bypass limiter, got %d on request %d", rr.Code, i)
		}
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	secret := []byte("s3cret")
	valid, err := auth.IssueAdminToken(secret, "ops", time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	var subject string
	protected := AdminAuthMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := auth.GetAdminClaims(r.Context()); claims != nil {
			subject = claims.Subject
		}
	}))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic Zm9vOmJhcg==", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/temporal/cache", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			protected.ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, rr.Code)
			}
		})
	}

	if subject != "ops" {
		t.Errorf("Expected claims subject ops in context, got %q", subject)
	}
}

func TestAdminAuthMiddleware_NoSecret(t *testing.T) {
	protected := AdminAuthMiddleware(nil)(okHandler)

	rr := httptest.NewRecorder()
	protected.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 when admin API is disabled, got %d", rr.Code)
	}
}

func TestMetricsMiddleware_RecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	metricsReg := metrics.NewMetricsRegistry(reg)

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(metricsReg))
	r.Get("/api/v1/airports/{icao}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/airports/XXXX", nil))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() != "airclock_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["endpoint"] == "/api/v1/airports/{icao}" && labels["status_code"] == "404" {
				found = true
			}
		}
	}
	if !found {
		t.Error("Expected request counter labelled with the route pattern and status 404")
	}
}
