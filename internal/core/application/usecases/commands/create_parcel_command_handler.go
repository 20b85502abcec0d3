package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

// CreateParcelCommandHandler stores new parcels in created / unpaid state.
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      kernel.Clock
}

// NewCreateParcelCommandHandler creates a handler that registers new parcels.
func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory, clock kernel.Clock) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates the parcel and returns its id.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, command CreateParcelCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	p, err := parcel.NewParcel(kernel.NewUUID(), command.CreatedBy(), command.Details(), h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return p.ID(), nil
}
