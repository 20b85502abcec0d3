package parcelrepo

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves a parcel with SELECT ... FOR UPDATE. The lock only
// outlives the call when the repository is bound to a transaction.
func (r *GormParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormParcelRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a parcel. Deleting a missing parcel is not an error.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// UpdateDelivery writes the delivery fields of aggregate provided the stored
// status still equals from.
//
// Example:
//
//	from := p.DeliveryStatus()
//	if err := p.MarkStatus(parcel.InTransit, now); err != nil {
//	    return err
//	}
//	if err := repo.UpdateDelivery(ctx, p, from); err != nil {
//	    return err // errs.ErrConflict if someone else moved the parcel
//	}
func (r *GormParcelRepository) UpdateDelivery(
	ctx context.Context, aggregate *parcel.Parcel, from parcel.DeliveryStatus,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND delivery_status = ?", dto.ID, from.String()).
		Updates(map[string]any{
			"delivery_status": dto.DeliveryStatus,
			"rider_id":        dto.RiderID,
			"rider_name":      dto.RiderName,
			"rider_email":     dto.RiderEmail,
			"rider_phone":     dto.RiderPhone,
			"picked_at":       dto.PickedAt,
			"delivered_at":    dto.DeliveredAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("parcel", aggregate.ID().String(), "delivery status is no longer "+from.String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// MarkPaid flips payment_status from unpaid to paid.
func (r *GormParcelRepository) MarkPaid(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND payment_status = ?", id.Bytes(), parcel.Unpaid.String()).
		Updates(map[string]any{
			"payment_status": parcel.Paid.String(),
			"paid_at":        at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("parcel", id.String(), "already paid")
	}
	return nil
}

// Cashout flips the cashout flag from false to true.
func (r *GormParcelRepository) Cashout(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND cashout = ?", id.Bytes(), false).
		Updates(map[string]any{
			"cashout":    true,
			"cashout_at": at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("parcel", id.String(), "already cashed out")
	}
	return nil
}

// CountActiveByRider counts the rider's parcels that are riders-assigned or
// in-transit.
func (r *GormParcelRepository) CountActiveByRider(
	ctx context.Context, riderID kernel.UUID, exclude *kernel.UUID,
) (int64, error) {
	if err := riderID.Validate(); err != nil {
		return 0, err
	}

	query := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("rider_id = ? AND delivery_status IN ?", riderID.Bytes(),
			[]string{parcel.RidersAssigned.String(), parcel.InTransit.String()})
	if exclude != nil {
		query = query.Where("id <> ?", exclude.Bytes())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
