// Package pgtest starts a disposable PostgreSQL container with the service
// schema applied, for integration suites.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"paquexpress/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a running container and a GORM handle connected to it.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

// Start runs postgres:15-alpine and applies all migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = migrations.Up(ctx, sqlDB); err != nil {
		return nil, err
	}

	return &Database{Container: container, DB: db, DSN: dsn}, nil
}

// Truncate empties every table and restarts identity sequences.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE delivery_records, packages, agents RESTART IDENTITY CASCADE").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return d.Container.Terminate(ctx)
}

// InsertAgent stores an agent row with an explicit id.
func (d *Database) InsertAgent(id int64, name, email, passwordHash string) error {
	return d.DB.Exec(
		"INSERT INTO agents (id, name, email, password_hash) VALUES (?, ?, ?, ?)",
		id, name, email, passwordHash,
	).Error
}

// InsertPackage stores a package row with an explicit id.
func (d *Database) InsertPackage(id int64, code, destination, state string, agentID int64) error {
	return d.DB.Exec(
		"INSERT INTO packages (id, unique_code, destination_address, delivery_state, assigned_agent_id) VALUES (?, ?, ?, ?, ?)",
		id, code, destination, state, agentID,
	).Error
}

// PackageState reads the delivery_state of a package.
func (d *Database) PackageState(id int64) (string, error) {
	var state string
	err := d.DB.Raw("SELECT delivery_state FROM packages WHERE id = ?", id).Scan(&state).Error
	return state, err
}

// DeliveryRecordCount counts records for a package.
func (d *Database) DeliveryRecordCount(packageID int64) (int64, error) {
	var count int64
	err := d.DB.Raw("SELECT count(*) FROM delivery_records WHERE package_id = ?", packageID).Scan(&count).Error
	return count, err
}
