// Package ledgerrepo persists the two append-only logs of the service:
// payments and tracking events.
package ledgerrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// PaymentDTO is the row of the payments table.
type PaymentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount        int64     `gorm:"type:bigint;not null"`
	CreatedBy     string    `gorm:"type:varchar(320);not null;index"`
	Method        string    `gorm:"type:varchar(64)"`
	TransactionID string    `gorm:"type:varchar(255)"`
	PaidAt        time.Time `gorm:"not null;index"`
}

// TableName overrides GORM's default "payment_dtos".
func (PaymentDTO) TableName() string {
	return "payments"
}

// TrackingEventDTO is the row of the tracking_events table. ParcelID has no
// foreign key; events may outlive their parcel.
type TrackingEventDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID string     `gorm:"type:varchar(128);not null;index:idx_tracking_events_tracking_at,priority:1"`
	ParcelID   *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"type:varchar(64);not null"`
	Details    string     `gorm:"type:text;not null"`
	UpdatedBy  string     `gorm:"type:varchar(320);not null"`
	At         time.Time  `gorm:"not null;index:idx_tracking_events_tracking_at,priority:2"`
}

// TableName overrides GORM's default "tracking_event_dtos".
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func paymentFromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID().Bytes(),
		ParcelID:      p.ParcelID().Bytes(),
		Amount:        p.Amount(),
		CreatedBy:     p.CreatedBy(),
		Method:        p.Method(),
		TransactionID: p.TransactionID(),
		PaidAt:        p.PaidAt(),
	}
}

// PaymentToDomain converts a payments row to a ledger entry.
func PaymentToDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, parcelID, dto.Amount, dto.CreatedBy, dto.Method, dto.TransactionID, dto.PaidAt)
}

func eventFromDomain(e *tracking.Event) TrackingEventDTO {
	var parcelID *uuid.UUID
	if e.ParcelID() != nil {
		raw := e.ParcelID().Bytes()
		parcelID = &raw
	}

	return TrackingEventDTO{
		ID:         e.ID().Bytes(),
		TrackingID: e.TrackingID(),
		ParcelID:   parcelID,
		Status:     e.Status(),
		Details:    e.Details(),
		UpdatedBy:  e.UpdatedBy(),
		At:         e.At(),
	}
}

// EventToDomain converts a tracking_events row to an event.
func EventToDomain(dto TrackingEventDTO) (*tracking.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parcelID *kernel.UUID
	if dto.ParcelID != nil {
		pid, pErr := kernel.UUIDFromBytes((*dto.ParcelID)[:])
		if pErr != nil {
			return nil, pErr
		}
		parcelID = &pid
	}

	return tracking.RestoreEvent(id, dto.TrackingID, parcelID, dto.Status, dto.Details, dto.UpdatedBy, dto.At)
}
