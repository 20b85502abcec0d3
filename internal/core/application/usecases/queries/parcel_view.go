package queries

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelView is the read model of a parcel.
type ParcelView struct {
	ID             kernel.UUID
	CreatedBy      string
	CreatedAt      time.Time
	Details        parcel.Details
	DeliveryStatus parcel.DeliveryStatus
	PaymentStatus  parcel.PaymentStatus
	PaidAt         *time.Time
	Cashout        bool
	CashoutAt      *time.Time
	Rider          *parcel.RiderAssignment
	PickedAt       *time.Time
	DeliveredAt    *time.Time
}

const parcelColumns = `
	id, created_by, created_at, title, kind, weight_kg, cost,
	sender_name, sender_contact, sender_region, sender_district, sender_address,
	receiver_name, receiver_contact, receiver_region, receiver_district, receiver_address,
	delivery_status, payment_status, paid_at, cashout, cashout_at,
	rider_id, rider_name, rider_email, rider_phone, picked_at, delivered_at`

// parcelRow mirrors parcelColumns; GORM maps the snake_case columns onto
// these fields.
type parcelRow struct {
	ID               uuid.UUID
	CreatedBy        string
	CreatedAt        time.Time
	Title            string
	Kind             string
	WeightKg         float64
	Cost             int64
	SenderName       string
	SenderContact    string
	SenderRegion     string
	SenderDistrict   string
	SenderAddress    string
	ReceiverName     string
	ReceiverContact  string
	ReceiverRegion   string
	ReceiverDistrict string
	ReceiverAddress  string
	DeliveryStatus   string
	PaymentStatus    string
	PaidAt           *time.Time
	Cashout          bool
	CashoutAt        *time.Time
	RiderID          *uuid.UUID
	RiderName        string
	RiderEmail       string
	RiderPhone       string
	PickedAt         *time.Time
	DeliveredAt      *time.Time
}

func (r parcelRow) toView() (ParcelView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return ParcelView{}, err
	}

	view := ParcelView{
		ID:        id,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		Details: parcel.Details{
			Title:    r.Title,
			Kind:     r.Kind,
			WeightKg: r.WeightKg,
			Cost:     r.Cost,
			Sender: parcel.Party{
				Name:     r.SenderName,
				Contact:  r.SenderContact,
				Region:   r.SenderRegion,
				District: r.SenderDistrict,
				Address:  r.SenderAddress,
			},
			Receiver: parcel.Party{
				Name:     r.ReceiverName,
				Contact:  r.ReceiverContact,
				Region:   r.ReceiverRegion,
				District: r.ReceiverDistrict,
				Address:  r.ReceiverAddress,
			},
		},
		DeliveryStatus: parcel.DeliveryStatus(r.DeliveryStatus),
		PaymentStatus:  parcel.PaymentStatus(r.PaymentStatus),
		PaidAt:         r.PaidAt,
		Cashout:        r.Cashout,
		CashoutAt:      r.CashoutAt,
		PickedAt:       r.PickedAt,
		DeliveredAt:    r.DeliveredAt,
	}

	if r.RiderID != nil {
		riderID, riderErr := kernel.UUIDFromBytes((*r.RiderID)[:])
		if riderErr != nil {
			return ParcelView{}, riderErr
		}
		view.Rider = &parcel.RiderAssignment{
			RiderID: riderID,
			Name:    r.RiderName,
			Email:   r.RiderEmail,
			Phone:   r.RiderPhone,
		}
	}

	return view, nil
}
