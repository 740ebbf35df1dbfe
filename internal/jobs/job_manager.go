package jobs

import (
	"fmt"
	"log/slog"

	"paquexpress/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	poolStatsJob *PoolStatsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	pool StatsSource,
	m *metrics.Metrics,
	poolStatsSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		poolStatsJob: NewPoolStatsJob(pool, m, poolStatsSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.poolStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start pool stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.poolStatsJob.Stop()
}
