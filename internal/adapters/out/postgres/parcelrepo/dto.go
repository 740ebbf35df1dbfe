// Package parcelrepo maps parcels between the domain model and the packages table.
package parcelrepo

import (
	"paquexpress/internal/core/domain/model/parcel"
)

// ParcelDTO is a row of the packages table. AssignedAgentID is nullable
// because upstream systems may store unassigned packages.
type ParcelDTO struct {
	ID                 int64  `gorm:"primaryKey"`
	UniqueCode         string `gorm:"not null;uniqueIndex"`
	DestinationAddress string `gorm:"not null"`
	DeliveryState      string `gorm:"not null"`
	AssignedAgentID    *int64 `gorm:"index:packages_assigned_agent_state_idx"`
}

func (ParcelDTO) TableName() string {
	return "packages"
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	status, err := parcel.ParseStatus(dto.DeliveryState)
	if err != nil {
		return nil, err
	}

	var agentID int64
	if dto.AssignedAgentID != nil {
		agentID = *dto.AssignedAgentID
	}

	return parcel.RestoreParcel(dto.ID, dto.UniqueCode, dto.DestinationAddress, status, agentID)
}
