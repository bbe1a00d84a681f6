package workers

import (
	"context"
	"time"

	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/temporal"
)

// ProfileSource is the assembler surface the warmer needs
type ProfileSource interface {
	GetProfile(ctx context.Context, identifier string) (*temporal.Profile, error)
}

// CacheWarmer keeps the reference and solar caches hot for a fixed list of
// airports by assembling their profiles on an interval.
type CacheWarmer struct {
	source   ProfileSource
	airports []string
	interval time.Duration
}

func NewCacheWarmer(source ProfileSource, airports []string, interval time.Duration) *CacheWarmer {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &CacheWarmer{
		source:   source,
		airports: airports,
		interval: interval,
	}
}

// Start warms once immediately, then every interval until ctx is cancelled
func (w *CacheWarmer) Start(ctx context.Context) error {
	if len(w.airports) == 0 {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Warm(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Warm(ctx)
		}
	}
}

// Warm assembles one profile per configured airport and returns how many
// succeeded.
func (w *CacheWarmer) Warm(ctx context.Context) int {
	warmed := 0
	for _, icao := range w.airports {
		if ctx.Err() != nil {
			break
		}
		profile, err := w.source.GetProfile(ctx, icao)
		if err != nil {
			logging.Warn("Cache warm failed", "icao", icao, "error", err)
			continue
		}
		if profile == nil {
			logging.Debug("Cache warm skipped unknown airport", "icao", icao)
			continue
		}
		warmed++
	}

	logging.Debug("Temporal caches warmed", "warmed", warmed, "configured", len(w.airports))
	return warmed
}
