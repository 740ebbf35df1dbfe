// Package delivery holds Record, the append-only evidence that a parcel was
// handed over: where (GeoPoint), by whom, and a reference to the photo taken.
package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"paquexpress/internal/core/domain/model/kernel"
	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/guard"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record was not built by NewRecord or RestoreRecord.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")
	// ErrPhotoURLIsRequired is returned for an empty photo evidence reference.
	ErrPhotoURLIsRequired = errs.NewValueIsRequiredError("photo evidence url")
)

// Record is created once per successful delivery and never mutated.
// The photo URL is stored as given; its reachability is not checked.
type Record struct {
	id          kernel.UUID
	packageID   int64
	agentID     int64
	location    kernel.GeoPoint
	photoURL    string
	deliveredAt time.Time
	guard       guard.ConstructorGuard
}

// NewRecord creates a record with a fresh id.
func NewRecord(
	packageID, agentID int64,
	location kernel.GeoPoint,
	photoURL string,
	deliveredAt time.Time,
) (*Record, error) {
	return RestoreRecord(kernel.NewUUID(), packageID, agentID, location, photoURL, deliveredAt)
}

// RestoreRecord rebuilds a record read from storage.
func RestoreRecord(
	id kernel.UUID,
	packageID, agentID int64,
	location kernel.GeoPoint,
	photoURL string,
	deliveredAt time.Time,
) (*Record, error) {
	r := &Record{deliveredAt: deliveredAt.UTC(), guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		r.setID(id),
		r.setPackageID(packageID),
		r.setAgentID(agentID),
		r.setLocation(location),
		r.setPhotoURL(photoURL),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) ID() kernel.UUID {
	return r.id
}

func (r *Record) PackageID() int64 {
	return r.packageID
}

func (r *Record) AgentID() int64 {
	return r.agentID
}

func (r *Record) Location() kernel.GeoPoint {
	return r.location
}

func (r *Record) PhotoURL() string {
	return r.photoURL
}

// DeliveredAt is always in UTC.
func (r *Record) DeliveredAt() time.Time {
	return r.deliveredAt
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setPackageID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("package id", fmt.Errorf("%d is not greater than 0", id))
	}
	r.packageID = id
	return nil
}

func (r *Record) setAgentID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("agent id", fmt.Errorf("%d is not greater than 0", id))
	}
	r.agentID = id
	return nil
}

func (r *Record) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	r.location = location
	return nil
}

func (r *Record) setPhotoURL(photoURL string) error {
	if strings.TrimSpace(photoURL) == "" {
		return ErrPhotoURLIsRequired
	}
	r.photoURL = photoURL
	return nil
}
