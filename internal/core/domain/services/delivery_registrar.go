package services

import (
	"time"

	"paquexpress/internal/core/domain/model/delivery"
	"paquexpress/internal/core/domain/model/kernel"
	"paquexpress/internal/core/domain/model/parcel"
)

// DeliveryRegistrar turns a delivery attempt into a state change on the
// parcel plus the evidence record that must be stored with it.
//
// Business rules:
//   - The parcel must be a constructed aggregate
//   - Only the assigned agent may deliver, and only from Assigned
//   - Evidence (location, photo URL) is validated before the parcel changes
//
// Example usage:
//
//	registrar := services.NewDeliveryRegistrar()
//	record, err := registrar.Register(p, 7, point, "http://x/p.jpg", time.Now())
//	if errors.Is(err, errs.ErrConflict) {
//	    // already delivered or not this agent's parcel
//	}
type DeliveryRegistrar struct{}

func NewDeliveryRegistrar() DeliveryRegistrar {
	return DeliveryRegistrar{}
}

// Register validates the evidence, applies Parcel.Deliver and returns the new
// record. On error the parcel is left unchanged.
func (DeliveryRegistrar) Register(
	p *parcel.Parcel,
	agentID int64,
	location kernel.GeoPoint,
	photoURL string,
	deliveredAt time.Time,
) (*delivery.Record, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	record, err := delivery.NewRecord(p.ID(), agentID, location, photoURL, deliveredAt)
	if err != nil {
		return nil, err
	}

	if err = p.Deliver(agentID); err != nil {
		return nil, err
	}

	return record, nil
}
