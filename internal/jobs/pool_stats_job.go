package jobs

import (
	"context"
	"database/sql"
	"log/slog"

	"paquexpress/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultPoolStatsSchedule samples every 15 seconds.
const DefaultPoolStatsSchedule = "*/15 * * * * *"

// StatsSource is satisfied by *sql.DB.
type StatsSource interface {
	Stats() sql.DBStats
}

// PoolStatsJob copies connection pool statistics into the Prometheus gauges
// on a cron schedule with a seconds field.
type PoolStatsJob struct {
	source   StatsSource
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPoolStatsJob creates the job. An empty schedule uses DefaultPoolStatsSchedule.
func NewPoolStatsJob(source StatsSource, m *metrics.Metrics, schedule string, logger *slog.Logger) *PoolStatsJob {
	if schedule == "" {
		schedule = DefaultPoolStatsSchedule
	}
	return &PoolStatsJob{
		source:   source,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pool_stats_job"),
	}
}

// Start registers the sampling function and starts the scheduler.
func (j *PoolStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Sample); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pool stats job started", "schedule", j.schedule)
	return nil
}

// Sample takes one snapshot. It is what the scheduler runs.
func (j *PoolStatsJob) Sample() {
	stats := j.source.Stats()
	j.metrics.ObservePool(stats)

	j.logger.DebugContext(context.Background(), "Connection pool sampled",
		"open", stats.OpenConnections,
		"in_use", stats.InUse,
		"idle", stats.Idle,
		"wait_count", stats.WaitCount,
		"wait_duration", stats.WaitDuration,
	)
}

// Stop stops the scheduler and waits for a running sample to finish.
func (j *PoolStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pool stats job stopped")
}
