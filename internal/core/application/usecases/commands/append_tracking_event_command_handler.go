package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/tracking"
)

// AppendTrackingEventCommandHandler writes to the append-only tracking log.
type AppendTrackingEventCommandHandler struct {
	uowFactory TrackingUoWFactory
	clock      kernel.Clock
}

// NewAppendTrackingEventCommandHandler creates a handler for manual tracking entries.
// The clock stamps each event; the TrackingUoWFactory only needs the tracking log.
func NewAppendTrackingEventCommandHandler(uowFactory TrackingUoWFactory, clock kernel.Clock) AppendTrackingEventCommandHandler {
	return AppendTrackingEventCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle appends the event and returns its id.
func (h AppendTrackingEventCommandHandler) Handle(
	ctx context.Context, command AppendTrackingEventCommand,
) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	ev, err := tracking.NewEvent(
		kernel.NewUUID(),
		command.TrackingID(),
		command.ParcelID(),
		command.Status(),
		command.Details(),
		command.UpdatedBy(),
		h.clock.Now(),
	)
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

	if err = uow.TrackingRepository().Append(ctx, ev); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return ev.ID(), nil
}
