package deliveryrepo

import (
	"context"

	"paquexpress/internal/adapters/out/postgres/pgerrors"
	"paquexpress/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GormDeliveryRecordRepository implements ports.DeliveryRecordRepository using GORM.
type GormDeliveryRecordRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRecordRepository(db *gorm.DB) *GormDeliveryRecordRepository {
	return &GormDeliveryRecordRepository{db: db}
}

// Add inserts the record. A second record for the same package, or a record
// naming an unknown package or agent, is a ConflictError.
func (r *GormDeliveryRecordRepository) Add(ctx context.Context, record *delivery.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrors.AsConflict(err, "package already delivered or id incorrect")
	}

	return nil
}
