package ports

import (
	"context"

	"paquexpress/internal/core/domain/model/delivery"
)

// DeliveryRecordRepository appends delivery evidence.
type DeliveryRecordRepository interface {
	// Add inserts a record. Integrity violations (a record already exists for
	// the package, unknown package or agent) are returned as errs.ConflictError.
	Add(ctx context.Context, record *delivery.Record) error
}
