package temporal

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"infinite-experiment/airclock/internal/common"
	"infinite-experiment/airclock/internal/metrics"
	"infinite-experiment/airclock/internal/models/entities"
)

// DefaultReferenceTTL is how long a directory record is served from cache
const DefaultReferenceTTL = 30 * time.Minute

// ErrDirectoryUnavailable wraps failures of the airport directory itself
var ErrDirectoryUnavailable = errors.New("airport directory unavailable")

// Directory is the external airport reference store. LookupAirport returns
// nil, nil when the identifier is unknown.
type Directory interface {
	LookupAirport(ctx context.Context, icao string) (*entities.AirportRecord, error)
}

// ReferenceEntry is a directory record plus the instant it was fetched
type ReferenceEntry struct {
	Record    entities.AirportRecord `json:"record"`
	FetchedAt time.Time              `json:"fetched_at"`
}

// CacheStats is the introspection view shared by both temporal caches
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// ReferenceCache fronts the Directory with a TTL keyed by normalized ICAO.
// Unknown airports are never cached.
type ReferenceCache struct {
	dir     Directory
	store   common.Store[ReferenceEntry]
	clock   common.Clock
	ttl     time.Duration
	metrics *metrics.MetricsRegistry

	hits   atomic.Int64
	misses atomic.Int64
}

func NewReferenceCache(dir Directory, store common.Store[ReferenceEntry], clock common.Clock, ttl time.Duration) *ReferenceCache {
	if ttl <= 0 {
		ttl = DefaultReferenceTTL
	}
	return &ReferenceCache{
		dir:   dir,
		store: store,
		clock: clock,
		ttl:   ttl,
	}
}

// SetMetrics attaches Prometheus counters
func (c *ReferenceCache) SetMetrics(m *metrics.MetricsRegistry) {
	c.metrics = m
}

// Fetch returns the record for identifier, or nil when the directory does
// not know it.
func (c *ReferenceCache) Fetch(ctx context.Context, identifier string) (*entities.AirportRecord, error) {
	key := entities.NormalizeICAO(identifier)

	if entry, ok := c.store.Get(key); ok && c.clock.Now().Sub(entry.FetchedAt) < c.ttl {
		c.hits.Add(1)
		if c.metrics != nil {
			c.metrics.CacheHitsTotal.WithLabelValues(metrics.CacheAirportReference).Inc()
		}
		record := entry.Record.Clone()
		return &record, nil
	}

	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.WithLabelValues(metrics.CacheAirportReference).Inc()
	}

	if key == "" {
		return nil, nil
	}

	record, err := c.dir.LookupAirport(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup %s: %w", ErrDirectoryUnavailable, key, err)
	}
	if record == nil {
		return nil, nil
	}

	c.store.Set(key, ReferenceEntry{Record: record.Clone(), FetchedAt: c.clock.Now()})

	out := record.Clone()
	return &out, nil
}

// Stats returns hit/miss counters and the current entry count, refreshing
// the entries gauge
func (c *ReferenceCache) Stats() CacheStats {
	entries := c.store.Len()
	if c.metrics != nil {
		c.metrics.CacheEntries.WithLabelValues(metrics.CacheAirportReference).Set(float64(entries))
	}
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: entries,
	}
}

// Clear drops every entry and resets the counters
func (c *ReferenceCache) Clear() {
	c.store.Clear()
	c.hits.Store(0)
	c.misses.Store(0)
	if c.metrics != nil {
		c.metrics.CacheEntries.WithLabelValues(metrics.CacheAirportReference).Set(0)
	}
}
