package cmd

import (
	"fmt"
	"log/slog"
	"time"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnMaxLifetime bounds how long a pooled connection is reused.
const ConnMaxLifetime = 30 * time.Minute

// OpenDatabase connects with GORM and sizes the pool from cfg. Idle
// connections are kept up to the pool size.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if level, err := cfg.SlogLevel(); err == nil && level <= slog.LevelDebug {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(gorm_postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB from gorm: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBPoolSize)
	sqlDB.SetMaxIdleConns(cfg.DBPoolSize)
	sqlDB.SetConnMaxLifetime(ConnMaxLifetime)

	return db, nil
}
