// Package jobs provides scheduled background tasks that run outside the
// request path.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and never touch
// domain state.
//
// # Available Jobs
//
// 1. PoolStatsJob - samples sql.DBStats into the paquexpress_db_pool_* gauges
// (every 15 seconds unless POOL_STATS_SCHEDULE says otherwise)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sqlDB, m, cfg.PoolStatsSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("Failed to start jobs: %v", err)
//	}
//
//	defer jobManager.StopAll()
//
// StopAll blocks until a sample in progress returns, so the pool can be
// closed right after it.
package jobs
