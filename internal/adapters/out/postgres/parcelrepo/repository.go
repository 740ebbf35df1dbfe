package parcelrepo

import (
	"context"
	"errors"
	"fmt"

	"paquexpress/internal/adapters/out/postgres/pgerrors"
	"paquexpress/internal/core/domain/model/parcel"
	"paquexpress/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotDelivered is returned by MarkDelivered for a parcel whose state was
// not moved to Delivered first.
var ErrNotDelivered = errs.NewValueIsInvalidError("parcel must be in DELIVERED state to be marked delivered")

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// GetAssignedForUpdate loads the parcel only if agentID owns it and locks the
// row (SELECT ... FOR UPDATE). The lock lasts until the surrounding
// transaction ends; outside a transaction it is released immediately.
func (r *GormParcelRepository) GetAssignedForUpdate(ctx context.Context, id, agentID int64) (*parcel.Parcel, error) {
	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND assigned_agent_id = ?", id, agentID).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", fmt.Sprintf("%d assigned to agent %d", id, agentID))
		}
		return nil, err
	}

	return toDomain(dto)
}

// MarkDelivered moves the stored row from ASSIGNED to DELIVERED. The update
// only matches a row still ASSIGNED to the same agent; zero affected rows is
// reported as a conflict.
func (r *GormParcelRepository) MarkDelivered(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Status() != parcel.Delivered {
		return ErrNotDelivered
	}

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND assigned_agent_id = ? AND delivery_state = ?",
			aggregate.ID(), aggregate.AgentID(), parcel.Assigned.String()).
		Update("delivery_state", parcel.Delivered.String())
	if result.Error != nil {
		return pgerrors.AsConflict(result.Error, "package already delivered or id incorrect")
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictErrorWithCause(
			"package already delivered or id incorrect",
			fmt.Errorf("no ASSIGNED row for package %d and agent %d", aggregate.ID(), aggregate.AgentID()),
		)
	}

	return nil
}
