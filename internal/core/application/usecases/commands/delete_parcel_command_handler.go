package commands

import (
	"context"
	"errors"

	"parcelhub/internal/pkg/errs"
)

// DeleteParcelCommandHandler deletes parcels. Deleting a missing parcel
// reports false without error.
//
// A parcel out for delivery can only be deleted by an admin; its rider goes
// back to idle in the same transaction when it carries nothing else.
type DeleteParcelCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteParcelCommandHandler creates a handler that opens one unit of
// work per call from uowFactory.
func NewDeleteParcelCommandHandler(uowFactory UoWFactory) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the parcel if the actor may manage it.
func (h DeleteParcelCommandHandler) Handle(ctx context.Context, command DeleteParcelCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()
	p, err := repo.GetForUpdate(ctx, command.ParcelID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = command.Actor().CanManageParcel(p); err != nil {
		return false, err
	}

	deleted, err := repo.Delete(ctx, p.ID())
	if err != nil {
		return false, err
	}

	if assignment := p.AssignedRider(); deleted && p.IsActive() && assignment != nil {
		if _, err = releaseRider(ctx, uow, assignment.RiderID, p.ID(), func(otherActive int64) bool {
			return otherActive == 0
		}); err != nil {
			return false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return deleted, nil
}
