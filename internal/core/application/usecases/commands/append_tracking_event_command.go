package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrAppendTrackingEventCommandIsNotConstructed = errors.New(
	"AppendTrackingEventCommand must be created via NewAppendTrackingEventCommand constructor",
)

// AppendTrackingEventCommand adds an entry to a tracking history.
type AppendTrackingEventCommand struct {
	trackingID string
	parcelID   *kernel.UUID
	status     string
	details    string
	updatedBy  string

	guard guard.ConstructorGuard
}

// NewAppendTrackingEventCommand requires trackingID, status, details and
// updatedBy. parcelID is an optional soft reference.
func NewAppendTrackingEventCommand(
	trackingID string,
	parcelID *kernel.UUID,
	status string,
	details string,
	updatedBy string,
) (AppendTrackingEventCommand, error) {
	c := AppendTrackingEventCommand{
		trackingID: strings.TrimSpace(trackingID),
		status:     strings.TrimSpace(status),
		details:    strings.TrimSpace(details),
		updatedBy:  strings.TrimSpace(updatedBy),
	}

	var err error
	for _, f := range []struct{ name, value string }{
		{"tracking_id", c.trackingID},
		{"status", c.status},
		{"details", c.details},
		{"updated_by", c.updatedBy},
	} {
		if f.value == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(f.name))
		}
	}
	if parcelID != nil {
		err = errors.Join(err, parcelID.Validate())
	}
	if err != nil {
		return AppendTrackingEventCommand{}, err
	}

	if parcelID != nil {
		id := *parcelID
		c.parcelID = &id
	}
	c.guard = guard.NewConstructorGuard()
	return c, nil
}

func (c AppendTrackingEventCommand) TrackingID() string     { return c.trackingID }
func (c AppendTrackingEventCommand) ParcelID() *kernel.UUID { return c.parcelID }
func (c AppendTrackingEventCommand) Status() string         { return c.status }
func (c AppendTrackingEventCommand) Details() string        { return c.details }
func (c AppendTrackingEventCommand) UpdatedBy() string      { return c.updatedBy }

func (c AppendTrackingEventCommand) Validate() error {
	return c.guard.Validate(ErrAppendTrackingEventCommandIsNotConstructed)
}
