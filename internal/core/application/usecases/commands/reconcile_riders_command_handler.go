package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/errs"
)

// ReconciliationReport lists riders whose availability disagreed with their
// parcels when the scan ran.
type ReconciliationReport struct {
	// Stale riders are in-delivery without any active parcel.
	Stale []kernel.UUID
	// Idle riders are idle while still bound to an active parcel.
	Idle []kernel.UUID
	// Repaired counts riders whose availability was corrected.
	Repaired int
}

// Drift is the number of inconsistent riders found.
func (r ReconciliationReport) Drift() int {
	return len(r.Stale) + len(r.Idle)
}

// ReconcileRidersCommandHandler detects and optionally repairs availability
// drift: a rider is in-delivery exactly when at least one parcel in
// riders-assigned or in-transit references it.
//
// Every repair re-reads the rider under a row lock and recounts before
// writing, so a rider that changed between scan and repair is left alone.
type ReconcileRidersCommandHandler struct {
	uowFactory UoWFactory
}

// NewReconcileRidersCommandHandler creates a handler comparing rider
// availability with the parcels they carry.
func NewReconcileRidersCommandHandler(uowFactory UoWFactory) ReconcileRidersCommandHandler {
	return ReconcileRidersCommandHandler{uowFactory: uowFactory}
}

// Handle runs one scan.
func (h ReconcileRidersCommandHandler) Handle(
	ctx context.Context, command ReconcileRidersCommand,
) (ReconciliationReport, error) {
	if err := command.Validate(); err != nil {
		return ReconciliationReport{}, err
	}

	report, err := h.scan(ctx)
	if err != nil {
		return ReconciliationReport{}, err
	}

	if !command.Repair() {
		return report, nil
	}

	for _, id := range report.Stale {
		repaired, err := h.repair(ctx, id, rider.InDelivery)
		if err != nil {
			return report, err
		}
		if repaired {
			report.Repaired++
		}
	}
	for _, id := range report.Idle {
		repaired, err := h.repair(ctx, id, rider.Idle)
		if err != nil {
			return report, err
		}
		if repaired {
			report.Repaired++
		}
	}

	return report, nil
}

func (h ReconcileRidersCommandHandler) scan(ctx context.Context) (ReconciliationReport, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconciliationReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var report ReconciliationReport

	busy, err := uow.RiderRepository().ListInDelivery(ctx)
	if err != nil {
		return ReconciliationReport{}, err
	}
	for _, r := range busy {
		active, err := uow.ParcelRepository().CountActiveByRider(ctx, r.ID(), nil)
		if err != nil {
			return ReconciliationReport{}, err
		}
		if active == 0 {
			report.Stale = append(report.Stale, r.ID())
		}
	}

	idle, err := uow.RiderRepository().ListIdleWithActiveParcels(ctx)
	if err != nil {
		return ReconciliationReport{}, err
	}
	for _, r := range idle {
		report.Idle = append(report.Idle, r.ID())
	}

	return report, nil
}

// repair fixes one rider found with availability expected. It reports
// false when the rider no longer needs fixing or cannot be fixed.
func (h ReconcileRidersCommandHandler) repair(ctx context.Context, id kernel.UUID, expected rider.Availability) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	r, err := riderRepo.GetForUpdate(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if r.Availability() != expected {
		return false, nil
	}

	active, err := uow.ParcelRepository().CountActiveByRider(ctx, id, nil)
	if err != nil {
		return false, err
	}

	switch {
	case expected == rider.InDelivery && active == 0:
		r.Release()
	case expected == rider.Idle && active > 0:
		// A rejected rider keeps its parcels but cannot start delivery;
		// leave it for an admin.
		if err = r.StartDelivery(); errors.Is(err, errs.ErrConflict) {
			return false, nil
		} else if err != nil {
			return false, err
		}
	default:
		return false, nil
	}

	if err = riderRepo.UpdateAvailability(ctx, r, expected); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
