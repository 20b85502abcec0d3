package commands

import (
	"errors"

	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrDeleteParcelCommandIsNotConstructed = errors.New(
	"DeleteParcelCommand must be created via NewDeleteParcelCommand constructor",
)

// DeleteParcelCommand removes a parcel on behalf of actor.
type DeleteParcelCommand struct {
	parcelID kernel.UUID
	actor    access.Actor

	guard guard.ConstructorGuard
}

func NewDeleteParcelCommand(parcelID kernel.UUID, actor access.Actor) (DeleteParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), validateActor(actor)); err != nil {
		return DeleteParcelCommand{}, err
	}

	return DeleteParcelCommand{
		parcelID: parcelID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteParcelCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c DeleteParcelCommand) Actor() access.Actor   { return c.actor }

func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}
