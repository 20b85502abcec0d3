package commands

import (
	"context"
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/services"
)

// AssignRiderCommandHandler orchestrates the rider assignment.
//
// Parcel, rider and the "riders-assigned" tracking event are written in one
// transaction: the parcel is riders-assigned with the rider's contact and
// the rider is in-delivery, or nothing changed at all. Both rows are locked
// for the duration, and the writes are additionally guarded by the values
// that were read.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // parcel or rider does not exist
//	case errors.Is(err, errs.ErrTransitionIsInvalid):
//	    // parcel is past created
//	case errors.Is(err, errs.ErrConflict):
//	    // rider not approved, or a concurrent writer won
//	}
type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.RiderDispatcher
	clock      kernel.Clock
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
// Requires a UoWFactory because parcel, rider and tracking log change in one transaction.
func NewAssignRiderCommandHandler(uowFactory UoWFactory, clock kernel.Clock) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewRiderDispatcher(),
		clock:      clock,
	}
}

// Handle performs the assignment.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, command AssignRiderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	riderRepo := uow.RiderRepository()

	p, err := parcelRepo.GetForUpdate(ctx, command.ParcelID())
	if err != nil {
		return err
	}

	r, err := riderRepo.GetForUpdate(ctx, command.RiderID())
	if err != nil {
		return err
	}

	fromStatus := p.DeliveryStatus()
	fromAvailability := r.Availability()

	if err = h.dispatcher.Assign(p, r); err != nil {
		return err
	}

	if err = parcelRepo.UpdateDelivery(ctx, p, fromStatus); err != nil {
		return err
	}

	if err = riderRepo.UpdateAvailability(ctx, r, fromAvailability); err != nil {
		return err
	}

	event, err := parcelEvent(p, p.DeliveryStatus().String(),
		fmt.Sprintf("assigned to %s (%s)", r.Name(), r.Email()), command.AssignedBy(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = uow.TrackingRepository().Append(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
