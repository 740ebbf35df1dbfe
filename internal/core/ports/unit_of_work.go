package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command.
// This ensures isolation between concurrent requests.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Callers begin it, defer
// Rollback, and Commit on success; Rollback after Commit is a no-op error.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// AgentRepository returns an AgentRepository bound to the current transaction.
	AgentRepository() AgentRepository

	// ParcelRepository returns a ParcelRepository bound to the current transaction.
	ParcelRepository() ParcelRepository

	// DeliveryRecordRepository returns a DeliveryRecordRepository bound to the current transaction.
	DeliveryRecordRepository() DeliveryRecordRepository
}
