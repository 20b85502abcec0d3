package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/services"
)

// UpdateDeliveryStatusResult reports the stored status and whether the
// rider went back to idle.
type UpdateDeliveryStatusResult struct {
	Status        parcel.DeliveryStatus
	RiderReleased bool
}

// UpdateDeliveryStatusCommandHandler moves a parcel forward and keeps the
// rider's availability consistent with it.
//
// Outcomes:
//   - errs.ErrObjectNotFound: no such parcel
//   - errs.ErrForbidden: actor is neither admin nor the assigned rider
//   - errs.ErrTransitionIsInvalid: the status does not follow the current one
//   - errs.ErrConflict: another writer changed the status since it was read
//
// When the parcel reaches a terminal status and its rider has no other
// active parcel, the rider is set back to idle in the same transaction.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.RiderDispatcher
	clock      kernel.Clock
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery progress.
// Requires a UoWFactory so that releasing the rider shares the parcel's transaction.
func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory, clock kernel.Clock) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewRiderDispatcher(),
		clock:      clock,
	}
}

// Handle applies the transition.
func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context, command UpdateDeliveryStatusCommand,
) (UpdateDeliveryStatusResult, error) {
	if err := command.Validate(); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	now := h.clock.Now()

	p, err := parcelRepo.GetForUpdate(ctx, command.ParcelID())
	if err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	if err = command.Actor().CanOperateParcel(p); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	from := p.DeliveryStatus()
	if err = p.MarkStatus(command.Status(), now); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	if err = parcelRepo.UpdateDelivery(ctx, p, from); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	event, err := parcelEvent(p, p.DeliveryStatus().String(),
		"status changed from "+from.String()+" to "+p.DeliveryStatus().String(), command.Actor().Email, now)
	if err != nil {
		return UpdateDeliveryStatusResult{}, err
	}
	if err = uow.TrackingRepository().Append(ctx, event); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	released, err := h.releaseRider(ctx, uow, p)
	if err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	return UpdateDeliveryStatusResult{Status: p.DeliveryStatus(), RiderReleased: released}, nil
}

// releaseRider sets the parcel's rider idle once it has nothing left to carry.
func (h UpdateDeliveryStatusCommandHandler) releaseRider(ctx context.Context, uow UoW, p *parcel.Parcel) (bool, error) {
	assignment := p.AssignedRider()
	if !p.DeliveryStatus().IsTerminal() || assignment == nil {
		return false, nil
	}

	return releaseRider(ctx, uow, assignment.RiderID, p.ID(), func(otherActive int64) bool {
		return h.dispatcher.ShouldRelease(p, otherActive)
	})
}
