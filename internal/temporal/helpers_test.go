package temporal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"infinite-experiment/airclock/internal/common"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/models/entities"

	"go.uber.org/zap"
)

func init() {
	logging.SetLogger(zap.NewNop().Sugar())
}

// manualClock is a settable clock for TTL tests
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock(t time.Time) *manualClock {
	return &manualClock{now: t}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ common.Clock = (*manualClock)(nil)

// mockDirectory counts lookups and serves from a map
type mockDirectory struct {
	mu       sync.Mutex
	records  map[string]entities.AirportRecord
	err      error
	lookups  int
	lastICAO string
}

func (m *mockDirectory) LookupAirport(_ context.Context, icao string) (*entities.AirportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	m.lastICAO = icao
	if m.err != nil {
		return nil, m.err
	}
	record, ok := m.records[icao]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *mockDirectory) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

var errDirectoryDown = errors.New("connection refused")

// stubAlgorithm places events symmetrically around the anchor and records calls
type stubAlgorithm struct {
	mu      sync.Mutex
	calls   int
	anchors []time.Time
	coords  [][2]float64
}

func (s *stubAlgorithm) Name() string { return "stub" }

func (s *stubAlgorithm) Events(anchor time.Time, lat, lon float64) SolarEvents {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.anchors = append(s.anchors, anchor)
	s.coords = append(s.coords, [2]float64{lat, lon})
	return SolarEvents{
		Dawn:      anchor.Add(-5*time.Hour - 30*time.Minute).UTC(),
		Sunrise:   anchor.Add(-5 * time.Hour).UTC(),
		SolarNoon: anchor.UTC(),
		Sunset:    anchor.Add(5 * time.Hour).UTC(),
		Dusk:      anchor.Add(5*time.Hour + 30*time.Minute).UTC(),
	}
}

func (s *stubAlgorithm) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("Failed to load %s: %v", name, err)
	}
	return loc
}

func ptr[T any](v T) *T {
	return &v
}

func heathrow() entities.AirportRecord {
	return entities.AirportRecord{
		ICAO:      "EGLL",
		IATA:      "LHR",
		Name:      "London Heathrow Airport",
		City:      "London",
		Country:   "GB",
		Latitude:  ptr(51.4706),
		Longitude: ptr(-0.461941),
		Timezone:  "Europe/London",
		Elevation: ptr(83),
	}
}

// countingStore records how often Len is called on the wrapped store
type countingStore[V any] struct {
	common.Store[V]
	mu   sync.Mutex
	lens int
}

func (s *countingStore[V]) Len() int {
	s.mu.Lock()
	s.lens++
	s.mu.Unlock()
	return s.Store.Len()
}

func (s *countingStore[V]) LenCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lens
}
