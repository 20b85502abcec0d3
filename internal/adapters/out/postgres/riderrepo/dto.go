// Package riderrepo persists rider aggregates with GORM.
package riderrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO is the row of the riders table.
type RiderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Email          string    `gorm:"type:varchar(320);not null;index"`
	Phone          string    `gorm:"type:varchar(64)"`
	Region         string    `gorm:"type:varchar(128)"`
	District       string    `gorm:"type:varchar(128);not null;index"`
	Vehicle        string    `gorm:"type:varchar(128)"`
	ApprovalStatus string    `gorm:"type:varchar(16);not null;index"`
	Availability   string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt      time.Time `gorm:"not null;index"`
}

// TableName overrides GORM's default "rider_dtos".
func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	p := r.Profile()
	return RiderDTO{
		ID:             r.ID().Bytes(),
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Region:         p.Region,
		District:       p.District,
		Vehicle:        p.Vehicle,
		ApprovalStatus: r.ApprovalStatus().String(),
		Availability:   r.Availability().String(),
		CreatedAt:      r.CreatedAt(),
	}
}

// ToDomain converts a row to a rider aggregate. Query handlers that read
// riders with raw SQL reuse it.
func ToDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	approval, err := rider.ParseApprovalStatus(dto.ApprovalStatus)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(id, rider.Profile{
		Name:     dto.Name,
		Email:    dto.Email,
		Phone:    dto.Phone,
		Region:   dto.Region,
		District: dto.District,
		Vehicle:  dto.Vehicle,
	}, approval, rider.Availability(dto.Availability), dto.CreatedAt)
}
