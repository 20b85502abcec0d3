package commands

import (
	"errors"

	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrCashoutParcelCommandIsNotConstructed = errors.New(
	"CashoutParcelCommand must be created via NewCashoutParcelCommand constructor",
)

// CashoutParcelCommand sets a parcel's cashout flag.
type CashoutParcelCommand struct {
	parcelID kernel.UUID
	actor    access.Actor

	guard guard.ConstructorGuard
}

func NewCashoutParcelCommand(parcelID kernel.UUID, actor access.Actor) (CashoutParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), validateActor(actor)); err != nil {
		return CashoutParcelCommand{}, err
	}

	return CashoutParcelCommand{
		parcelID: parcelID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CashoutParcelCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c CashoutParcelCommand) Actor() access.Actor   { return c.actor }

func (c CashoutParcelCommand) Validate() error {
	return c.guard.Validate(ErrCashoutParcelCommandIsNotConstructed)
}
