package commands

import (
	"context"
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/payment"
)

// RecordPaymentCommandHandler marks a parcel paid and appends the ledger
// entry in one transaction.
//
// The guarded unpaid → paid update is the only gate: it runs before the
// insert, so of two concurrent payments for one parcel exactly one reaches
// the ledger and the other reports errs.ErrConflict.
type RecordPaymentCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewRecordPaymentCommandHandler creates a handler for payments.
// Requires a UoWFactory: the parcel flag, the ledger row and the tracking entry
// are written together or not at all.
func NewRecordPaymentCommandHandler(uowFactory UoWFactory, clock kernel.Clock) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle records the payment and returns the ledger entry id.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, command RecordPaymentCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	p, err := parcelRepo.Get(ctx, command.ParcelID())
	if err != nil {
		return kernel.UUID{}, err
	}

	now := h.clock.Now()
	entry, err := payment.NewPayment(
		kernel.NewUUID(),
		p.ID(),
		command.Amount(),
		command.CreatedBy(),
		command.Method(),
		command.TransactionID(),
		now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = parcelRepo.MarkPaid(ctx, p.ID(), now); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.PaymentRepository().Add(ctx, entry); err != nil {
		return kernel.UUID{}, err
	}

	ev, err := parcelEvent(p, parcel.Paid.String(),
		fmt.Sprintf("payment of %d recorded by %s", entry.Amount(), entry.CreatedBy()),
		entry.CreatedBy(), now)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.TrackingRepository().Append(ctx, ev); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return entry.ID(), nil
}
