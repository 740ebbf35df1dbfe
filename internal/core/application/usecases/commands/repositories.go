// Package commands contains business operations that modify or authenticate
// against system state. Every command is built by its constructor, validated
// by its handler, and run inside at most one unit of work.
package commands

import (
	"context"

	"paquexpress/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// DeliveryRecordRepoFactory provides access to the delivery record repository within a transaction.
	DeliveryRecordRepoFactory interface {
		DeliveryRecordRepository() ports.DeliveryRecordRepository
	}

	// DeliveryUoW spans the parcel state update and the delivery record insert.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   parcels := uow.ParcelRepository()
	//   records := uow.DeliveryRecordRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	DeliveryUoW interface {
		TxManager
		ParcelRepoFactory
		DeliveryRecordRepoFactory
	}

	// DeliveryUoWFactory creates a new delivery unit of work per command.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}
)
