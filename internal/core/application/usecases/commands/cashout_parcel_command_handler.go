package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
)

// CashoutParcelCommandHandler performs the guarded false → true update of
// a parcel's cashout flag. Of two concurrent cashouts exactly one succeeds;
// the other reports errs.ErrConflict.
type CashoutParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	clock      kernel.Clock
}

// NewCashoutParcelCommandHandler creates a handler for rider cashouts.
// The clock supplies the cashout time.
func NewCashoutParcelCommandHandler(uowFactory ParcelUoWFactory, clock kernel.Clock) CashoutParcelCommandHandler {
	return CashoutParcelCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle cashes the parcel out and returns the stamped time.
func (h CashoutParcelCommandHandler) Handle(ctx context.Context, command CashoutParcelCommand) (time.Time, error) {
	if err := command.Validate(); err != nil {
		return time.Time{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return time.Time{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()

	// Plain read: a 404 must be told apart from a lost race, and the
	// actor check needs the assigned rider.
	p, err := repo.Get(ctx, command.ParcelID())
	if err != nil {
		return time.Time{}, err
	}

	if err = command.Actor().CanOperateParcel(p); err != nil {
		return time.Time{}, err
	}

	now := h.clock.Now()
	if err = repo.Cashout(ctx, p.ID(), now); err != nil {
		return time.Time{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return time.Time{}, err
	}

	return now, nil
}
