// Package tracking holds the append-only TrackingEvent log entry.
package tracking

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event is one entry of a parcel's tracking history. Events are never
// updated or deleted; a history is read ordered by time ascending.
//
// parcelID is a soft reference: it is recorded when known but no foreign
// key ties it to an existing parcel.
type Event struct {
	id         kernel.UUID
	trackingID string
	parcelID   *kernel.UUID
	status     string
	details    string
	updatedBy  string
	at         time.Time

	guard guard.ConstructorGuard
}

// NewEvent builds an event. trackingID, status, details and updatedBy are
// required; every missing one is reported.
//
// Example:
//
//	ev, err := tracking.NewEvent(kernel.NewUUID(), "TRK-1", &parcelID,
//	    "in-transit", "picked up by karim@x.com", "karim@x.com", clock.Now())
func NewEvent(
	id kernel.UUID,
	trackingID string,
	parcelID *kernel.UUID,
	status string,
	details string,
	updatedBy string,
	at time.Time,
) (*Event, error) {
	e := &Event{
		trackingID: strings.TrimSpace(trackingID),
		status:     strings.TrimSpace(status),
		details:    strings.TrimSpace(details),
		updatedBy:  strings.TrimSpace(updatedBy),
		at:         at,
		guard:      guard.NewConstructorGuard(),
	}

	var err error
	if idErr := id.Validate(); idErr != nil {
		err = errors.Join(err, idErr)
	}
	if parcelID != nil {
		if pErr := parcelID.Validate(); pErr != nil {
			err = errors.Join(err, pErr)
		}
	}
	for _, f := range []struct{ name, value string }{
		{"tracking_id", e.trackingID},
		{"status", e.status},
		{"details", e.details},
		{"updated_by", e.updatedBy},
	} {
		if f.value == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(f.name))
		}
	}
	if err != nil {
		return nil, err
	}

	e.id = id
	if parcelID != nil {
		pid := *parcelID
		e.parcelID = &pid
	}
	return e, nil
}

// RestoreEvent rebuilds an event loaded from storage.
func RestoreEvent(
	id kernel.UUID,
	trackingID string,
	parcelID *kernel.UUID,
	status string,
	details string,
	updatedBy string,
	at time.Time,
) (*Event, error) {
	return NewEvent(id, trackingID, parcelID, status, details, updatedBy, at)
}

func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e *Event) ID() kernel.UUID         { return e.id }
func (e *Event) TrackingID() string      { return e.trackingID }
func (e *Event) ParcelID() *kernel.UUID  { return e.parcelID }
func (e *Event) Status() string          { return e.status }
func (e *Event) Details() string         { return e.details }
func (e *Event) UpdatedBy() string       { return e.updatedBy }
func (e *Event) At() time.Time           { return e.at }
