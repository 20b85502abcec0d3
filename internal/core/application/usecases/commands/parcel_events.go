package commands

import (
	"time"

	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/pkg/errs"
)

// parcelEvent builds the tracking event written alongside a parcel state
// change. Events emitted by the service use the parcel id as tracking id.
func parcelEvent(p *parcel.Parcel, status, details, updatedBy string, at time.Time) (*tracking.Event, error) {
	parcelID := p.ID()
	return tracking.NewEvent(kernel.NewUUID(), parcelID.String(), &parcelID, status, details, updatedBy, at)
}

func validateActor(actor access.Actor) error {
	if actor.Email == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return actor.Role.Validate()
}
