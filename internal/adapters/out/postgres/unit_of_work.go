// Package postgres provides the GORM-based Unit of Work over the PostgreSQL
// store of agents, packages and delivery records.
//
// Each business operation creates its own unit of work, begins it, defers
// Rollback and commits on success:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx) //nolint:errcheck // no-op after Commit
//
//	p, err := uow.ParcelRepository().GetAssignedForUpdate(ctx, packageID, agentID)
//	...
//	if err := uow.DeliveryRecordRepository().Add(ctx, record); err != nil {
//	    return err
//	}
//	if err := uow.ParcelRepository().MarkDelivered(ctx, p); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// The transaction holds one pooled connection from Begin until Commit or
// Rollback, so the deferred Rollback returns it on every exit path.
package postgres

import (
	"context"

	"paquexpress/internal/adapters/out/postgres/agentrepo"
	"paquexpress/internal/adapters/out/postgres/deliveryrepo"
	"paquexpress/internal/adapters/out/postgres/parcelrepo"
	"paquexpress/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction shared by the
// repositories it hands out.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling it twice does not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. It fails with gorm.ErrInvalidTransaction
// when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. It fails with gorm.ErrInvalidTransaction
// when no transaction is active, which makes a deferred Rollback after a
// successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// AgentRepository reads agents inside the current transaction, or directly
// from the pool when none is active.
func (uow *GormUnitOfWork) AgentRepository() ports.AgentRepository {
	return agentrepo.NewGormAgentRepository(uow.conn())
}

// ParcelRepository persists parcel state inside the current transaction.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn())
}

// DeliveryRecordRepository appends delivery records inside the current transaction.
func (uow *GormUnitOfWork) DeliveryRecordRepository() ports.DeliveryRecordRepository {
	return deliveryrepo.NewGormDeliveryRecordRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
