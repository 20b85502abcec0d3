package queries

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrListTrackingEventsQueryIsNotConstructed = errors.New(
	"ListTrackingEventsQuery must be created via NewListTrackingEventsQuery constructor",
)

// ListTrackingEventsQuery reads a tracking history. The key is a tracking
// id; when it is also a parcel id, events referencing that parcel are
// included.
type ListTrackingEventsQuery struct {
	trackingID string

	guard guard.ConstructorGuard
}

func NewListTrackingEventsQuery(trackingID string) (ListTrackingEventsQuery, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return ListTrackingEventsQuery{}, errs.NewValueIsRequiredError("tracking_id")
	}
	return ListTrackingEventsQuery{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListTrackingEventsQuery) TrackingID() string { return q.trackingID }

func (q ListTrackingEventsQuery) Validate() error {
	return q.guard.Validate(ErrListTrackingEventsQueryIsNotConstructed)
}

// TrackingEventView is one history entry.
type TrackingEventView struct {
	ID         kernel.UUID
	TrackingID string
	ParcelID   *kernel.UUID
	Status     string
	Details    string
	UpdatedBy  string
	At         time.Time
}
