package queries

import (
	"context"

	"paquexpress/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GetAssignedPackagesQueryHandler reads pending packages straight from the
// packages table, bypassing the aggregate repositories.
//
// Example:
//
//	handler := NewGetAssignedPackagesQueryHandler(db)
//	packages, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("list assigned packages: %w", err)
//	}
type GetAssignedPackagesQueryHandler struct {
	db *gorm.DB
}

func NewGetAssignedPackagesQueryHandler(db *gorm.DB) GetAssignedPackagesQueryHandler {
	return GetAssignedPackagesQueryHandler{db: db}
}

// Handle returns the agent's ASSIGNED packages ordered by id. An agent with
// nothing pending gets an empty, non-nil slice.
func (h GetAssignedPackagesQueryHandler) Handle(
	ctx context.Context,
	query GetAssignedPackagesQuery,
) ([]AssignedPackage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	packages := make([]AssignedPackage, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			unique_code,
			destination_address,
			delivery_state
		FROM packages
		WHERE assigned_agent_id = ? AND delivery_state = ?
		ORDER BY id
	`, query.AgentID(), parcel.Assigned.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p AssignedPackage
		var state string

		if err = rows.Scan(&p.ID, &p.Code, &p.Destination, &state); err != nil {
			return nil, err
		}

		status, statusErr := parcel.ParseStatus(state)
		if statusErr != nil {
			return nil, statusErr
		}
		p.Status = status
		packages = append(packages, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}
