package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider application.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by identifier.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetForUpdate retrieves a rider and locks its row until the end of the
	// current transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// UpdateApproval persists the approval status.
	UpdateApproval(ctx context.Context, aggregate *rider.Rider) error

	// UpdateAvailability persists availability, guarded by the value the
	// rider had when it was loaded (from). Returns errs.ErrConflict when the
	// stored value differs.
	UpdateAvailability(ctx context.Context, aggregate *rider.Rider, from rider.Availability) error

	// ListInDelivery returns every rider whose availability is in-delivery.
	ListInDelivery(ctx context.Context) ([]*rider.Rider, error)

	// ListIdleWithActiveParcels returns idle riders that are still bound to
	// at least one riders-assigned or in-transit parcel.
	ListIdleWithActiveParcels(ctx context.Context) ([]*rider.Rider, error)
}
