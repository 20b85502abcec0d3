package riderrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRiderRepository implements ports.RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rider application.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
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

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves a rider with SELECT ... FOR UPDATE.
func (r *GormRiderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRiderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// UpdateApproval saves the approval status.
func (r *GormRiderRepository) UpdateApproval(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&RiderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("approval_status", aggregate.ApprovalStatus().String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateAvailability saves availability provided the stored value still
// equals from.
func (r *GormRiderRepository) UpdateAvailability(
	ctx context.Context, aggregate *rider.Rider, from rider.Availability,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&RiderDTO{}).
		Where("id = ? AND availability = ?", aggregate.ID().Bytes(), from.String()).
		Update("availability", aggregate.Availability().String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("rider", aggregate.ID().String(), "availability is no longer "+from.String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ListInDelivery returns riders marked in-delivery, oldest first.
func (r *GormRiderRepository) ListInDelivery(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	if err := r.db.WithContext(ctx).
		Where("availability = ?", rider.InDelivery.String()).
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListIdleWithActiveParcels returns idle riders still referenced by an
// active parcel.
func (r *GormRiderRepository) ListIdleWithActiveParcels(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	if err := r.db.WithContext(ctx).
		Where("availability = ?", rider.Idle.String()).
		Where("EXISTS (SELECT 1 FROM parcels WHERE parcels.rider_id = riders.id AND parcels.delivery_status IN ?)",
			[]string{parcel.RidersAssigned.String(), parcel.InTransit.String()}).
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func toDomainList(dtos []RiderDTO) ([]*rider.Rider, error) {
	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rd, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}

	return riders, nil
}
