package queries

import (
	"errors"
	"fmt"

	"paquexpress/internal/core/domain/model/parcel"
	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/guard"
)

var (
	ErrGetAssignedPackagesQueryIsNotConstructed = errors.New(
		"GetAssignedPackagesQuery must be created via NewGetAssignedPackagesQuery constructor",
	)
)

// GetAssignedPackagesQuery lists the packages an agent still has to deliver.
//
// Example:
//
//	query, err := NewGetAssignedPackagesQuery(profile.ID)
//	packages, err := handler.Handle(ctx, query)
//	for _, p := range packages {
//	    fmt.Printf("%d %s -> %s\n", p.ID, p.Code, p.Destination)
//	}
type GetAssignedPackagesQuery struct {
	agentID int64

	guard guard.ConstructorGuard
}

func NewGetAssignedPackagesQuery(agentID int64) (GetAssignedPackagesQuery, error) {
	if agentID <= 0 {
		return GetAssignedPackagesQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"agent id", fmt.Errorf("%d is not greater than 0", agentID),
		)
	}
	return GetAssignedPackagesQuery{agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignedPackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignedPackagesQueryIsNotConstructed)
}

func (q GetAssignedPackagesQuery) AgentID() int64 {
	return q.agentID
}

// AssignedPackage is the read model of one pending package.
type AssignedPackage struct {
	ID          int64
	Code        string
	Destination string
	Status      parcel.Status
}
