package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"infinite-experiment/airclock/internal/auth"
	"infinite-experiment/airclock/internal/common"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/models/dtos"
	"infinite-experiment/airclock/internal/models/entities"
	"infinite-experiment/airclock/internal/temporal"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func init() {
	logging.SetLogger(zap.NewNop().Sugar())
}

// Mock airport directory
type mockDirectory struct {
	lookupFunc func(ctx context.Context, icao string) (*entities.AirportRecord, error)
	calls      int
}

func (m *mockDirectory) LookupAirport(ctx context.Context, icao string) (*entities.AirportRecord, error) {
	m.calls++
	return m.lookupFunc(ctx, icao)
}

// Mock airport syncer
type mockSyncer struct {
	runFunc func(ctx context.Context, triggeredBy string) (*dtos.AirportSyncResult, error)
}

func (m *mockSyncer) RunOnce(ctx context.Context, triggeredBy string) (*dtos.AirportSyncResult, error) {
	return m.runFunc(ctx, triggeredBy)
}

func jfk() *entities.AirportRecord {
	lat, lon := 40.6398, -73.7789
	return &entities.AirportRecord{
		ICAO:      "KJFK",
		IATA:      "JFK",
		Name:      "John F Kennedy International Airport",
		City:      "New York",
		Country:   "US",
		Latitude:  &lat,
		Longitude: &lon,
		Timezone:  "America/New_York",
	}
}

func newTestHandlers(dir temporal.Directory, syncer AirportSyncer) *Handlers {
	clock := common.ClockFunc(func() time.Time {
		return time.Date(2025, 11, 17, 21, 0, 0, 0, time.UTC)
	})
	refs := temporal.NewReferenceCache(dir, common.NewMemoryStore[temporal.ReferenceEntry](), clock, temporal.DefaultReferenceTTL)
	solar := temporal.NewSolarEngine(temporal.SunCalcAlgorithm{}, common.NewMemoryStore[temporal.SolarSnapshot](), clock, temporal.DefaultSolarTTL)
	resolver := temporal.NewResolver(temporal.CoordinateZoneFinder{})

	deps := &Dependencies{
		Services: &Services{
			Temporal:    temporal.NewAssembler(refs, resolver, solar, clock),
			AirportSync: syncer,
		},
		CacheBackend: "memory",
	}
	return NewHandlers(deps)
}

func serve(t *testing.T, pattern, method, target string, handler http.HandlerFunc, ctx context.Context) (*httptest.ResponseRecorder, dtos.APIResponse) {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	req := httptest.NewRequest(method, target, nil)
	if ctx != nil {
		req = req.WithContext(ctx)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return rr, response
}

func TestGetTemporalProfile_Success(t *testing.T) {
	dir := &mockDirectory{lookupFunc: func(ctx context.Context, icao string) (*entities.AirportRecord, error) {
		if icao == "KJFK" {
			return jfk(), nil
		}
		return nil, nil
	}}
	h := newTestHandlers(dir, nil)

	rr, response := serve(t, "/api/v1/airports/{icao}/temporal", http.MethodGet, "/api/v1/airports/kjfk/temporal", h.GetTemporalProfile(), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status ok, got %s", response.Status)
	}

	data, _ := json.Marshal(response.Data)
	var profile struct {
		Airport  struct{ ICAO string } `json:"airport"`
		Timezone struct {
			Name       string `json:"name"`
			Provenance string `json:"provenance"`
		} `json:"timezone"`
		Clock struct {
			UTC   string `json:"utc"`
			Local string `json:"local"`
		} `json:"clock"`
		Meta struct {
			CacheKey string   `json:"cache_key"`
			Warnings []string `json:"warnings"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		t.Fatalf("Failed to decode profile: %v", err)
	}

	if profile.Airport.ICAO != "KJFK" {
		t.Errorf("Expected KJFK, got %s", profile.Airport.ICAO)
	}
	if profile.Timezone.Name != "America/New_York" || profile.Timezone.Provenance != "declared" {
		t.Errorf("Unexpected timezone %+v", profile.Timezone)
	}
	if profile.Clock.UTC != "21:00 Z" {
		t.Errorf("Expected 21:00 Z, got %s", profile.Clock.UTC)
	}
	if profile.Clock.Local != "16:00 EST" {
		t.Errorf("Expected 16:00 EST, got %s", profile.Clock.Local)
	}
	if profile.Meta.CacheKey != "America/New_York:2025-11-17" {
		t.Errorf("Expected local-date cache key, got %s", profile.Meta.CacheKey)
	}
	if len(profile.Meta.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", profile.Meta.Warnings)
	}
}

func TestGetTemporalProfile_NotFound(t *testing.T) {
	dir := &mockDirectory{lookupFunc: func(ctx context.Context, icao string) (*entities.AirportRecord, error) {
		return nil, nil
	}}
	h := newTestHandlers(dir, nil)

	rr, response := serve(t, "/api/v1/airports/{icao}/temporal", http.MethodGet, "/api/v1/airports/XXXX/temporal", h.GetTemporalProfile(), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
	if response.Status != "error" {
		t.Errorf("Expected status error, got %s", response.Status)
	}
	if response.Message != "Airport XXXX not found" {
		t.Errorf("Unexpected message %q", response.Message)
	}
}

func TestGetTemporalProfile_DirectoryDown(t *testing.T) {
	dir := &mockDirectory{lookupFunc: func(ctx context.Context, icao string) (*entities.AirportRecord, error) {
		return nil, errors.New("connection refused")
	}}
	h := newTestHandlers(dir, nil)

	rr, response := serve(t, "/api/v1/airports/{icao}/temporal", http.MethodGet, "/api/v1/airports/KJFK/temporal", h.GetTemporalProfile(), nil)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
	if response.Message != "Failed to assemble temporal profile" {
		t.Errorf("Expected generic message, got %q", response.Message)
	}
}

func TestGetAirport_UsesReferenceCache(t *testing.T) {
	dir := &mockDirectory{lookupFunc: func(ctx context.Context, icao string) (*entities.AirportRecord, error) {
		return jfk(), nil
	}}
	h := newTestHandlers(dir, nil)

	for i := 0; i < 3; i++ {
		rr, _ := serve(t, "/api/v1/airports/{icao}", http.MethodGet, "/api/v1/airports/KJFK", h.GetAirport(), nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
	}

	if dir.calls != 1 {
		t.Errorf("Expected one directory lookup, got %d", dir.calls)
	}
}

func TestCacheStatsAndClear(t *testing.T) {
	dir := &mockDirectory{lookupFunc: func(ctx context.Context, icao string) (*entities.AirportRecord, error) {
		return jfk(), nil
	}}
	h := newTestHandlers(dir, nil)
	serve(t, "/api/v1/airports/{icao}/temporal", http.MethodGet, "/api/v1/airports/KJFK/temporal", h.GetTemporalProfile(), nil)

	before := h.cacheStats()
	if before.Reference.Entries != 1 || before.Solar.Entries != 1 {
		t.Fatalf("Expected one entry in each cache, got %+v", before)
	}
	if before.Algorithm != "suncalc" || before.Backend != "memory" {
		t.Errorf("Unexpected cache metadata %+v", before)
	}

	rr, _ := serve(t, "/api/v1/admin/temporal/cache", http.MethodDelete, "/api/v1/admin/temporal/cache", h.ClearCaches(), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	after := h.cacheStats()
	if after.Reference.Entries != 0 || after.Solar.Entries != 0 || after.Reference.Misses != 0 {
		t.Errorf("Expected cleared caches, got %+v", after)
	}
}

func TestSyncAirports(t *testing.T) {
	syncer := &mockSyncer{runFunc: func(ctx context.Context, triggeredBy string) (*dtos.AirportSyncResult, error) {
		return &dtos.AirportSyncResult{TriggeredBy: triggeredBy, Imported: 42}, nil
	}}
	h := newTestHandlers(&mockDirectory{}, syncer)

	// Missing claims
	rr, _ := serve(t, "/sync", http.MethodPost, "/sync", h.SyncAirports(), nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without claims, got %d", rr.Code)
	}

	ctx := auth.SetAdminClaims(context.Background(), &auth.AdminClaims{Subject: "ops"})
	rr, response := serve(t, "/sync", http.MethodPost, "/sync", h.SyncAirports(), ctx)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	data, _ := json.Marshal(response.Data)
	var result dtos.AirportSyncResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if result.TriggeredBy != "ops" || result.Imported != 42 {
		t.Errorf("Unexpected sync result %+v", result)
	}
}

func TestSyncAirports_Failure(t *testing.T) {
	syncer := &mockSyncer{runFunc: func(ctx context.Context, triggeredBy string) (*dtos.AirportSyncResult, error) {
		return nil, errors.New("HTTP 502")
	}}
	h := newTestHandlers(&mockDirectory{}, syncer)

	ctx := auth.SetAdminClaims(context.Background(), &auth.AdminClaims{Subject: "ops"})
	rr, response := serve(t, "/sync", http.MethodPost, "/sync", h.SyncAirports(), ctx)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", rr.Code)
	}
	if response.Status != "error" {
		t.Errorf("Expected status error, got %s", response.Status)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	checks := map[string]HealthCheck{
		"database": func(ctx context.Context) (string, error) { return "sqlite connected", nil },
		"redis":    func(ctx context.Context) (string, error) { return "", errors.New("dial tcp: refused") },
	}

	rr := httptest.NewRecorder()
	HealthCheckHandler(checks, time.Now().Add(-time.Minute)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rr.Code)
	}

	var resp entities.HealthCheckResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode health: %v", err)
	}
	if resp.Status != "down" {
		t.Errorf("Expected overall down, got %s", resp.Status)
	}
	if resp.Services["database"].Status != "ok" || resp.Services["redis"].Status != "down" {
		t.Errorf("Unexpected services %+v", resp.Services)
	}
}
