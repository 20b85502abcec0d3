package ports

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
//
// Every state change goes through a guarded update: the write carries the
// expected current value in its WHERE clause and reports errs.ErrConflict
// when no row matched. Two concurrent writers racing on the same guard can
// therefore never both succeed.
type ParcelRepository interface {
	// Add persists a new parcel.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetForUpdate retrieves a parcel and locks its row until the end of the
	// current transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// Delete removes a parcel. Reports false, without error, if nothing
	// was deleted.
	Delete(ctx context.Context, id kernel.UUID) (bool, error)

	// UpdateDelivery writes delivery status, rider contact and timestamps,
	// guarded by the status the parcel had when it was loaded (from).
	UpdateDelivery(ctx context.Context, aggregate *parcel.Parcel, from parcel.DeliveryStatus) error

	// MarkPaid moves the parcel from unpaid to paid.
	// Returns errs.ErrConflict if the parcel is missing or already paid.
	MarkPaid(ctx context.Context, id kernel.UUID, at time.Time) error

	// Cashout sets the cashout flag.
	// Returns errs.ErrConflict if the parcel is missing or already cashed out.
	Cashout(ctx context.Context, id kernel.UUID, at time.Time) error

	// CountActiveByRider counts parcels in riders-assigned or in-transit
	// bound to the rider, excluding the given parcel when non-nil.
	CountActiveByRider(ctx context.Context, riderID kernel.UUID, exclude *kernel.UUID) (int64, error)
}
