package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
)

// RegisterRiderCommandHandler stores rider applications in pending / idle state.
type RegisterRiderCommandHandler struct {
	uowFactory RiderUoWFactory
	clock      kernel.Clock
}

// NewRegisterRiderCommandHandler creates a handler for rider applications.
func NewRegisterRiderCommandHandler(uowFactory RiderUoWFactory, clock kernel.Clock) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle registers the rider and returns its id.
func (h RegisterRiderCommandHandler) Handle(ctx context.Context, command RegisterRiderCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	r, err := rider.NewRider(kernel.NewUUID(), command.Profile(), h.clock.Now())
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

	if err = uow.RiderRepository().Add(ctx, r); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return r.ID(), nil
}
