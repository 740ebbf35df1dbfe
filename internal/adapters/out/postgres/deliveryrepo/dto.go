// Package deliveryrepo maps delivery records to the delivery_records table.
package deliveryrepo

import (
	"time"

	"paquexpress/internal/core/domain/model/delivery"

	"github.com/google/uuid"
)

// DeliveryRecordDTO is a row of the delivery_records table.
type DeliveryRecordDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID   int64     `gorm:"not null;uniqueIndex"`
	AgentID     int64     `gorm:"not null"`
	Latitude    float64   `gorm:"not null"`
	Longitude   float64   `gorm:"not null"`
	PhotoURL    string    `gorm:"column:photo_url;not null"`
	DeliveredAt time.Time `gorm:"not null"`
}

func (DeliveryRecordDTO) TableName() string {
	return "delivery_records"
}

func fromDomain(record *delivery.Record) DeliveryRecordDTO {
	return DeliveryRecordDTO{
		ID:          record.ID().Bytes(),
		PackageID:   record.PackageID(),
		AgentID:     record.AgentID(),
		Latitude:    record.Location().Latitude(),
		Longitude:   record.Location().Longitude(),
		PhotoURL:    record.PhotoURL(),
		DeliveredAt: record.DeliveredAt(),
	}
}

