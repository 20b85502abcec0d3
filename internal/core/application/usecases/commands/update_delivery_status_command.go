package commands

import (
	"errors"

	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand advances a parcel along the delivery pipeline.
type UpdateDeliveryStatusCommand struct {
	parcelID kernel.UUID
	status   parcel.DeliveryStatus
	actor    access.Actor

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand requires a well-formed id and a known,
// non-empty status label.
func NewUpdateDeliveryStatusCommand(
	parcelID kernel.UUID, status string, actor access.Actor,
) (UpdateDeliveryStatusCommand, error) {
	parsed, statusErr := parcel.ParseDeliveryStatus(status)
	if err := errors.Join(parcelID.Validate(), statusErr, validateActor(actor)); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return UpdateDeliveryStatusCommand{
		parcelID: parcelID,
		status:   parsed,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryStatusCommand) ParcelID() kernel.UUID         { return c.parcelID }
func (c UpdateDeliveryStatusCommand) Status() parcel.DeliveryStatus { return c.status }
func (c UpdateDeliveryStatusCommand) Actor() access.Actor           { return c.actor }

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}
