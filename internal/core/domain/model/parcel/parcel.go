package parcel

import (
	"errors"
	"fmt"
	"strings"

	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/guard"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not built by RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via RestoreParcel constructor")
	// ErrCodeIsRequired is returned for an empty external code.
	ErrCodeIsRequired = errs.NewValueIsRequiredError("unique code")
	// ErrDestinationIsRequired is returned for an empty destination address.
	ErrDestinationIsRequired = errs.NewValueIsRequiredError("destination address")
)

// Parcel is a delivery unit assigned to one agent.
//
// Invariants:
//   - id and assigned agent id are positive
//   - code and destination are non-empty
//   - status is a known delivery state
//   - only the assigned agent can deliver it, and only once
//
// Example:
//
//	p, _ := parcel.RestoreParcel(42, "PQX-0042", "Av. Reforma 1", parcel.Assigned, 7)
//	if err := p.Deliver(7); err != nil {
//	    // errors.Is(err, errs.ErrConflict)
//	}
type Parcel struct {
	id          int64
	code        string
	destination string
	status      Status
	agentID     int64
	guard       guard.ConstructorGuard
}

// RestoreParcel rebuilds a Parcel read from storage.
func RestoreParcel(id int64, code, destination string, status Status, agentID int64) (*Parcel, error) {
	p := &Parcel{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setDestination(destination),
		p.setStatus(status),
		p.setAgentID(agentID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate reports whether the parcel was built by RestoreParcel.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id == other.id
}

func (p *Parcel) ID() int64 {
	return p.id
}

// Code returns the external, human-facing unique code.
func (p *Parcel) Code() string {
	return p.code
}

func (p *Parcel) Destination() string {
	return p.destination
}

func (p *Parcel) Status() Status {
	return p.status
}

// AgentID returns the id of the assigned agent.
func (p *Parcel) AgentID() int64 {
	return p.agentID
}

// Deliver marks the parcel Delivered on behalf of agentID.
//
// It fails with a ConflictError when agentID is not the assigned agent or the
// parcel is not Assigned. The parcel is left unchanged on failure.
func (p *Parcel) Deliver(agentID int64) error {
	if agentID != p.agentID {
		return errs.NewConflictErrorWithCause(
			"package already delivered or id incorrect",
			fmt.Errorf("package %d is not assigned to agent %d", p.id, agentID),
		)
	}

	newStatus, err := p.status.Deliver()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

func (p *Parcel) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	p.id = id
	return nil
}

func (p *Parcel) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrCodeIsRequired
	}
	p.code = code
	return nil
}

func (p *Parcel) setDestination(destination string) error {
	if strings.TrimSpace(destination) == "" {
		return ErrDestinationIsRequired
	}
	p.destination = destination
	return nil
}

func (p *Parcel) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Parcel) setAgentID(agentID int64) error {
	if agentID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("assigned agent id", fmt.Errorf("%d is not greater than 0", agentID))
	}
	p.agentID = agentID
	return nil
}
