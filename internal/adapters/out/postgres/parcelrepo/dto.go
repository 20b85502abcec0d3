// Package parcelrepo persists parcel aggregates with GORM.
//
// State changes are written as conditional updates: the WHERE clause carries
// the value the caller loaded, and a zero row count means another writer got
// there first.
package parcelrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is the row of the parcels table.
// Rider contact fields are denormalized so that parcel reads need no join.
type ParcelDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatedBy      string     `gorm:"type:varchar(320);not null;index"`
	CreatedAt      time.Time  `gorm:"not null;index"`
	Title          string     `gorm:"type:varchar(255)"`
	Kind           string     `gorm:"type:varchar(64)"`
	WeightKg       float64    `gorm:"type:numeric(10,3);not null;default:0"`
	Cost           int64      `gorm:"type:bigint;not null;default:0"`
	Sender         PartyDTO   `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver       PartyDTO   `gorm:"embedded;embeddedPrefix:receiver_"`
	DeliveryStatus string     `gorm:"type:varchar(32);not null;index"`
	PaymentStatus  string     `gorm:"type:varchar(16);not null;index"`
	PaidAt         *time.Time `gorm:"default:null"`
	Cashout        bool       `gorm:"not null;default:false"`
	CashoutAt      *time.Time `gorm:"default:null"`
	RiderID        *uuid.UUID `gorm:"type:uuid;index"`
	RiderName      string     `gorm:"type:varchar(255)"`
	RiderEmail     string     `gorm:"type:varchar(320);index"`
	RiderPhone     string     `gorm:"type:varchar(64)"`
	PickedAt       *time.Time `gorm:"default:null"`
	DeliveredAt    *time.Time `gorm:"default:null"`
}

// TableName overrides GORM's default "parcel_dtos".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// PartyDTO is the embedded sender or receiver block.
type PartyDTO struct {
	Name     string `gorm:"type:varchar(255)"`
	Contact  string `gorm:"type:varchar(64)"`
	Region   string `gorm:"type:varchar(128)"`
	District string `gorm:"type:varchar(128);index"`
	Address  string `gorm:"type:text"`
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	d := p.Details()
	dto := ParcelDTO{
		ID:             p.ID().Bytes(),
		CreatedBy:      p.CreatedBy(),
		CreatedAt:      p.CreatedAt(),
		Title:          d.Title,
		Kind:           d.Kind,
		WeightKg:       d.WeightKg,
		Cost:           d.Cost,
		Sender:         partyFromDomain(d.Sender),
		Receiver:       partyFromDomain(d.Receiver),
		DeliveryStatus: p.DeliveryStatus().String(),
		PaymentStatus:  p.PaymentStatus().String(),
		PaidAt:         p.PaidAt(),
		Cashout:        p.IsCashedOut(),
		CashoutAt:      p.CashoutAt(),
		PickedAt:       p.PickedAt(),
		DeliveredAt:    p.DeliveredAt(),
	}

	if r := p.AssignedRider(); r != nil {
		riderID := r.RiderID.Bytes()
		dto.RiderID = &riderID
		dto.RiderName = r.Name
		dto.RiderEmail = r.Email
		dto.RiderPhone = r.Phone
	}

	return dto
}

func partyFromDomain(p parcel.Party) PartyDTO {
	return PartyDTO{
		Name:     p.Name,
		Contact:  p.Contact,
		Region:   p.Region,
		District: p.District,
		Address:  p.Address,
	}
}

func (dto PartyDTO) toDomain() parcel.Party {
	return parcel.Party{
		Name:     dto.Name,
		Contact:  dto.Contact,
		Region:   dto.Region,
		District: dto.District,
		Address:  dto.Address,
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryStatus, err := parcel.ParseDeliveryStatus(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := parcel.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var assignment *parcel.RiderAssignment
	if dto.RiderID != nil {
		riderID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		assignment = &parcel.RiderAssignment{
			RiderID: riderID,
			Name:    dto.RiderName,
			Email:   dto.RiderEmail,
			Phone:   dto.RiderPhone,
		}
	}

	return parcel.RestoreParcel(parcel.State{
		ID:        id,
		CreatedBy: dto.CreatedBy,
		CreatedAt: dto.CreatedAt,
		Details: parcel.Details{
			Title:    dto.Title,
			Kind:     dto.Kind,
			WeightKg: dto.WeightKg,
			Cost:     dto.Cost,
			Sender:   dto.Sender.toDomain(),
			Receiver: dto.Receiver.toDomain(),
		},
		DeliveryStatus: deliveryStatus,
		PaymentStatus:  paymentStatus,
		PaidAt:         dto.PaidAt,
		Cashout:        dto.Cashout,
		CashoutAt:      dto.CashoutAt,
		Rider:          assignment,
		PickedAt:       dto.PickedAt,
		DeliveredAt:    dto.DeliveredAt,
	})
}
