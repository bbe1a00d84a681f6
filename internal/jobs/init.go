package jobs

import (
	"context"

	"infinite-experiment/airclock/internal/config"
	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/metrics"
)

// InitializeJobs builds the airport sync job and runs the first import when
// the directory is empty or sync_on_start is set. The caller runs Start.
func InitializeJobs(
	ctx context.Context,
	cfg config.AirportsConfig,
	importer AirportImporter,
	refs CacheClearer,
	directorySize int64,
	metricsReg *metrics.MetricsRegistry,
) *AirportSyncJob {
	job := NewAirportSyncJob(importer, refs, cfg.SourceURL, cfg.SyncSchedule, metricsReg)

	if cfg.SyncOnStart || directorySize == 0 {
		go func() {
			if _, err := job.RunOnce(ctx, "startup"); err != nil {
				logging.Error("Initial airport sync failed", "error", err)
			}
		}()
	}

	return job
}
