package temporal

import (
	"fmt"
	"sync/atomic"
	"time"

	"infinite-experiment/airclock/internal/common"
	"infinite-experiment/airclock/internal/metrics"
)

// DefaultSolarTTL is how long a computed snapshot is reused
const DefaultSolarTTL = 12 * time.Hour

// SolarSnapshot holds one local day's solar events for a zone and the
// coordinates they were computed for. Zero instants and empty local strings
// mark events that do not occur.
type SolarSnapshot struct {
	CacheKey  string  `json:"cache_key"`
	Zone      string  `json:"zone"`
	Date      string  `json:"date"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Algorithm string  `json:"algorithm"`

	Dawn      time.Time `json:"dawn"`
	Sunrise   time.Time `json:"sunrise"`
	SolarNoon time.Time `json:"solar_noon"`
	Sunset    time.Time `json:"sunset"`
	Dusk      time.Time `json:"dusk"`

	DawnLocal      string `json:"dawn_local"`
	SunriseLocal   string `json:"sunrise_local"`
	SolarNoonLocal string `json:"solar_noon_local"`
	SunsetLocal    string `json:"sunset_local"`
	DuskLocal      string `json:"dusk_local"`

	ComputedAt time.Time `json:"computed_at"`
}

// Complete reports whether all five events were computed
func (s SolarSnapshot) Complete() bool {
	return !s.Dawn.IsZero() && !s.Sunrise.IsZero() && !s.SolarNoon.IsZero() &&
		!s.Sunset.IsZero() && !s.Dusk.IsZero()
}

// SolarEngine computes and caches solar snapshots keyed by zone and local date
type SolarEngine struct {
	algorithm SolarAlgorithm
	store     common.Store[SolarSnapshot]
	clock     common.Clock
	ttl       time.Duration
	metrics   *metrics.MetricsRegistry

	hits   atomic.Int64
	misses atomic.Int64
}

func NewSolarEngine(algorithm SolarAlgorithm, store common.Store[SolarSnapshot], clock common.Clock, ttl time.Duration) *SolarEngine {
	if algorithm == nil {
		algorithm = SunCalcAlgorithm{}
	}
	if ttl <= 0 {
		ttl = DefaultSolarTTL
	}
	return &SolarEngine{
		algorithm: algorithm,
		store:     store,
		clock:     clock,
		ttl:       ttl,
	}
}

// SetMetrics attaches Prometheus counters
func (e *SolarEngine) SetMetrics(m *metrics.MetricsRegistry) {
	e.metrics = m
}

// Algorithm returns the name of the configured solar algorithm
func (e *SolarEngine) Algorithm() string {
	return e.algorithm.Name()
}

// Compute returns the snapshot for ref's local calendar day in loc. The
// algorithm is anchored at local noon of that day so instants near local
// midnight do not pick up the neighbouring day's events.
func (e *SolarEngine) Compute(lat, lon float64, loc *time.Location, ref time.Time) SolarSnapshot {
	if loc == nil {
		loc = time.UTC
	}
	anchor := LocalNoon(ref, loc)
	key := SolarCacheKey(loc, anchor)
	slot := storeKey(key, lat, lon)

	if snap, ok := e.store.Get(slot); ok && e.clock.Now().Sub(snap.ComputedAt) < e.ttl {
		e.hits.Add(1)
		if e.metrics != nil {
			e.metrics.CacheHitsTotal.WithLabelValues(metrics.CacheSolarEvents).Inc()
		}
		return snap
	}

	e.misses.Add(1)
	if e.metrics != nil {
		e.metrics.CacheMissesTotal.WithLabelValues(metrics.CacheSolarEvents).Inc()
	}

	start := time.Now()
	events := e.algorithm.Events(anchor, lat, lon)
	if e.metrics != nil {
		e.metrics.SolarComputeDuration.WithLabelValues(e.algorithm.Name()).Observe(time.Since(start).Seconds())
	}

	snap := SolarSnapshot{
		CacheKey:  key,
		Zone:      loc.String(),
		Date:      LocalDate(anchor, loc),
		Latitude:  lat,
		Longitude: lon,
		Algorithm: e.algorithm.Name(),

		Dawn:      events.Dawn,
		Sunrise:   events.Sunrise,
		SolarNoon: events.SolarNoon,
		Sunset:    events.Sunset,
		Dusk:      events.Dusk,

		DawnLocal:      formatEvent(events.Dawn, loc),
		SunriseLocal:   formatEvent(events.Sunrise, loc),
		SolarNoonLocal: formatEvent(events.SolarNoon, loc),
		SunsetLocal:    formatEvent(events.Sunset, loc),
		DuskLocal:      formatEvent(events.Dusk, loc),

		ComputedAt: e.clock.Now(),
	}

	e.store.Set(slot, snap)
	return snap
}

// Stats returns hit/miss counters and the current entry count. Counting
// entries may scan the backend, so the entries gauge is refreshed here and
// not on every miss.
func (e *SolarEngine) Stats() CacheStats {
	entries := e.store.Len()
	if e.metrics != nil {
		e.metrics.CacheEntries.WithLabelValues(metrics.CacheSolarEvents).Set(float64(entries))
	}
	return CacheStats{
		Hits:    e.hits.Load(),
		Misses:  e.misses.Load(),
		Entries: entries,
	}
}

// Clear drops every snapshot and resets the counters
func (e *SolarEngine) Clear() {
	e.store.Clear()
	e.hits.Store(0)
	e.misses.Store(0)
	if e.metrics != nil {
		e.metrics.CacheEntries.WithLabelValues(metrics.CacheSolarEvents).Set(0)
	}
}

// LocalNoon returns 12:00 wall-clock time on t's calendar day in loc
func LocalNoon(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 12, 0, 0, 0, loc)
}

// storeKey extends the zone:date key with the coordinates the snapshot was
// computed for, so airports sharing a zone never share sun times.
func storeKey(key string, lat, lon float64) string {
	return fmt.Sprintf("%s@%.4f,%.4f", key, lat, lon)
}

func formatEvent(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return FormatLocal(t, loc)
}
