package ports

import (
	"context"

	"paquexpress/internal/core/domain/model/parcel"
)

// ParcelRepository persists the delivery state of parcels.
type ParcelRepository interface {
	// GetAssignedForUpdate loads the parcel with the given id only if it is
	// assigned to agentID, locking the row until the transaction ends.
	// Returns an errs.ObjectNotFoundError otherwise.
	GetAssignedForUpdate(ctx context.Context, id, agentID int64) (*parcel.Parcel, error)

	// MarkDelivered stores the Delivered state of a parcel that was Assigned
	// to the same agent. When no row matches (state changed concurrently or
	// wrong agent) it returns an errs.ConflictError.
	MarkDelivered(ctx context.Context, aggregate *parcel.Parcel) error
}
