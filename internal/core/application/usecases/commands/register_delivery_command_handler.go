package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paquexpress/internal/core/domain/model/kernel"
	"paquexpress/internal/core/domain/services"
	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/metrics"
)

// DeliveryReceipt describes a committed delivery.
type DeliveryReceipt struct {
	RecordID    kernel.UUID
	PackageID   int64
	AgentID     int64
	DeliveredAt time.Time
}

// RegisterDeliveryCommandHandler stores a delivery atomically: the evidence
// record and the package's DELIVERED state are committed together or not at
// all.
//
// Steps, inside one unit of work:
//  1. lock the package row, only if it is assigned to the agent
//  2. apply the Assigned -> Delivered transition and build the record
//  3. insert the record
//  4. update the package state, requiring exactly one ASSIGNED row
//
// A missing or foreign package, a second delivery, or any integrity violation
// is an errs.ConflictError. Other failures are returned wrapped and the
// transaction is rolled back.
type RegisterDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	registrar  services.DeliveryRegistrar
	now        func() time.Time
	metrics    *metrics.Metrics
}

// NewRegisterDeliveryCommandHandler creates the handler. A nil now uses time.Now.
func NewRegisterDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	now func() time.Time,
	m *metrics.Metrics,
) RegisterDeliveryCommandHandler {
	if now == nil {
		now = time.Now
	}
	return RegisterDeliveryCommandHandler{
		uowFactory: uowFactory,
		registrar:  services.NewDeliveryRegistrar(),
		now:        now,
		metrics:    m,
	}
}

// Handle processes the command and reports the outcome to metrics.
func (h RegisterDeliveryCommandHandler) Handle(ctx context.Context, command RegisterDeliveryCommand) (DeliveryReceipt, error) {
	receipt, err := h.handle(ctx, command)
	h.metrics.RecordDelivery(deliveryResult(err))
	return receipt, err
}

func (h RegisterDeliveryCommandHandler) handle(ctx context.Context, command RegisterDeliveryCommand) (DeliveryReceipt, error) {
	if err := command.Validate(); err != nil {
		return DeliveryReceipt{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeliveryReceipt{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcels := uow.ParcelRepository()
	records := uow.DeliveryRecordRepository()

	p, err := parcels.GetAssignedForUpdate(ctx, command.PackageID(), command.AgentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return DeliveryReceipt{}, errs.NewConflictErrorWithCause("package already delivered or id incorrect", err)
	}
	if err != nil {
		return DeliveryReceipt{}, fmt.Errorf("load package: %w", err)
	}

	record, err := h.registrar.Register(p, command.AgentID(), command.Location(), command.PhotoURL(), h.now())
	if err != nil {
		return DeliveryReceipt{}, err
	}

	if err = records.Add(ctx, record); err != nil {
		return DeliveryReceipt{}, fmt.Errorf("store delivery record: %w", err)
	}

	if err = parcels.MarkDelivered(ctx, p); err != nil {
		return DeliveryReceipt{}, fmt.Errorf("update package state: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return DeliveryReceipt{}, fmt.Errorf("commit delivery: %w", err)
	}

	return DeliveryReceipt{
		RecordID:    record.ID(),
		PackageID:   record.PackageID(),
		AgentID:     record.AgentID(),
		DeliveredAt: record.DeliveredAt(),
	}, nil
}

func deliveryResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, errs.ErrConflict):
		return metrics.ResultConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
