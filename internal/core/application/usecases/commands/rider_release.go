package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/errs"
)

// releaseRider sets riderID back to idle when release agrees, given the
// number of the rider's active parcels other than parcelID.
// The rider row is locked before counting so that two of its parcels
// finishing at once cannot both see the other one as still active.
func releaseRider(
	ctx context.Context,
	uow UoW,
	riderID, parcelID kernel.UUID,
	release func(otherActive int64) bool,
) (bool, error) {
	riderRepo := uow.RiderRepository()
	r, err := riderRepo.GetForUpdate(ctx, riderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if r.Availability() != rider.InDelivery {
		return false, nil
	}

	others, err := uow.ParcelRepository().CountActiveByRider(ctx, r.ID(), &parcelID)
	if err != nil {
		return false, err
	}

	if !release(others) {
		return false, nil
	}

	r.Release()
	if err = riderRepo.UpdateAvailability(ctx, r, rider.InDelivery); err != nil {
		return false, err
	}

	return true, nil
}
