package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/metrics"
	"infinite-experiment/airclock/internal/models/dtos"

	"github.com/robfig/cron/v3"
)

// AirportImporter is the part of the airport loader the job drives
type AirportImporter interface {
	LoadFromURL(ctx context.Context, url string) (int, error)
	GetStats(ctx context.Context) (map[string]interface{}, error)
}

// CacheClearer drops cached reference records after an import
type CacheClearer interface {
	Clear()
}

// AirportSyncJob re-imports the airport dataset on a cron schedule and on demand
type AirportSyncJob struct {
	importer  AirportImporter
	refs      CacheClearer
	sourceURL string
	schedule  string
	metrics   *metrics.MetricsRegistry

	// serializes scheduled and manual runs
	running sync.Mutex
	cron    *cron.Cron
}

func NewAirportSyncJob(importer AirportImporter, refs CacheClearer, sourceURL, schedule string, metricsReg *metrics.MetricsRegistry) *AirportSyncJob {
	return &AirportSyncJob{
		importer:  importer,
		refs:      refs,
		sourceURL: sourceURL,
		schedule:  schedule,
		metrics:   metricsReg,
		// Prevent overlapping runs
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Schedule returns the cron expression the job runs on
func (j *AirportSyncJob) Schedule() string {
	return j.schedule
}

// RunOnce imports the dataset and clears the reference cache on success
func (j *AirportSyncJob) RunOnce(ctx context.Context, triggeredBy string) (*dtos.AirportSyncResult, error) {
	j.running.Lock()
	defer j.running.Unlock()

	start := time.Now()
	logging.Info("Airport sync starting", "source", j.sourceURL, "triggered_by", triggeredBy)

	imported, err := j.importer.LoadFromURL(ctx, j.sourceURL)
	if err != nil {
		logging.Error("Airport sync failed", "source", j.sourceURL, "error", err)
		return nil, fmt.Errorf("airport sync failed: %w", err)
	}

	if j.refs != nil {
		j.refs.Clear()
	}

	duration := time.Since(start)
	if j.metrics != nil {
		j.metrics.AirportSyncDuration.Observe(duration.Seconds())
		j.metrics.AirportsImported.Set(float64(imported))
	}

	result := &dtos.AirportSyncResult{
		TriggeredBy: triggeredBy,
		Source:      j.sourceURL,
		Imported:    imported,
		StartedAt:   start,
		DurationMs:  duration.Milliseconds(),
	}

	stats, err := j.importer.GetStats(ctx)
	if err != nil {
		logging.Warn("Airport sync: stats unavailable", "error", err)
	} else {
		result.Stats = stats
	}

	logging.Info("Airport sync completed",
		"imported", imported,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// Start registers the schedule and blocks until ctx is cancelled
func (j *AirportSyncJob) Start(ctx context.Context) error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(ctx, "scheduler"); err != nil {
			logging.Error("Scheduled airport sync failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	logging.Info("Airport sync scheduler started", "schedule", j.schedule)
	j.cron.Start()

	<-ctx.Done()
	logging.Info("Airport sync scheduler stopping")
	<-j.cron.Stop().Done()
	return nil
}
