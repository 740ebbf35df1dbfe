package parcel

import (
	"fmt"

	"paquexpress/internal/pkg/errs"
)

// Status is the delivery state of a parcel.
//
// State transitions handled by this service:
//
//	Assigned ──> Delivered
//
// InTransit and Returned may be set by upstream systems; they are readable but
// never produced or left by this service.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	// Assigned parcels wait for their agent to deliver them.
	Assigned
	// Delivered is final.
	Delivered
	// InTransit is an upstream state.
	InTransit
	// Returned is an upstream state.
	Returned
)

// Storage representations of each status.
const (
	assignedValue  = "ASSIGNED"
	deliveredValue = "DELIVERED"
	inTransitValue = "IN_TRANSIT"
	returnedValue  = "RETURNED"
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown has no storage representation
	return map[Status]string{
		Assigned:  assignedValue,
		Delivered: deliveredValue,
		InTransit: inTransitValue,
		Returned:  returnedValue,
	}
}

// ParseStatus maps the storage form ("ASSIGNED", "DELIVERED", ...) to a Status.
func ParseStatus(value string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery state",
		fmt.Errorf("%q is not a known delivery state", value),
	)
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery state", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the storage representation, or "UNKNOWN".
//
// Example:
//
//	fmt.Println(parcel.Delivered) // Output: "DELIVERED"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Deliver transitions Assigned to Delivered. Any other source state yields a
// ConflictError, so a second delivery of the same parcel is a conflict.
func (s Status) Deliver() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewConflictErrorWithCause(
			"package already delivered or id incorrect",
			fmt.Errorf("%s is not a valid status to deliver", s),
		)
	}
	return Delivered, nil
}
