package commands

import (
	"errors"
	"fmt"
	"strings"

	"paquexpress/internal/core/domain/model/kernel"
	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/guard"
)

var (
	ErrRegisterDeliveryCommandIsNotConstructed = errors.New(
		"RegisterDeliveryCommand must be created via NewRegisterDeliveryCommand constructor",
	)
	ErrPhotoEvidenceURLIsRequired = errs.NewValueIsRequiredError("photo evidence url")
)

// RegisterDeliveryCommand records that agentID handed over packageID at a
// location, with a reference to the photo taken as evidence.
//
// Example:
//
//	cmd, err := NewRegisterDeliveryCommand(7, 42, 19.4, -99.1, "http://x/p.jpg")
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//	receipt, err := handler.Handle(ctx, cmd)
type RegisterDeliveryCommand struct {
	agentID   int64
	packageID int64
	location  kernel.GeoPoint
	photoURL  string

	guard guard.ConstructorGuard
}

// NewRegisterDeliveryCommand validates ids, coordinates and the photo URL.
// All violations are reported together.
func NewRegisterDeliveryCommand(
	agentID, packageID int64,
	latitude, longitude float64,
	photoURL string,
) (RegisterDeliveryCommand, error) {
	command := RegisterDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setPackageID(packageID),
		command.setLocation(latitude, longitude),
		command.setPhotoURL(photoURL),
	); err != nil {
		return RegisterDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDeliveryCommandIsNotConstructed)
}

func (c RegisterDeliveryCommand) AgentID() int64 {
	return c.agentID
}

func (c RegisterDeliveryCommand) PackageID() int64 {
	return c.packageID
}

func (c RegisterDeliveryCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c RegisterDeliveryCommand) PhotoURL() string {
	return c.photoURL
}

func (c *RegisterDeliveryCommand) setAgentID(agentID int64) error {
	if agentID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("agent id", fmt.Errorf("%d is not greater than 0", agentID))
	}
	c.agentID = agentID
	return nil
}

func (c *RegisterDeliveryCommand) setPackageID(packageID int64) error {
	if packageID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("package id", fmt.Errorf("%d is not greater than 0", packageID))
	}
	c.packageID = packageID
	return nil
}

func (c *RegisterDeliveryCommand) setLocation(latitude, longitude float64) error {
	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *RegisterDeliveryCommand) setPhotoURL(photoURL string) error {
	photoURL = strings.TrimSpace(photoURL)
	if photoURL == "" {
		return ErrPhotoEvidenceURLIsRequired
	}
	c.photoURL = photoURL
	return nil
}
