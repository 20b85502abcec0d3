package http

import (
	"time"

	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/rider"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every failed request.
type Error struct {
	Error string `json:"error"`
}

// Id is returned by create endpoints.
type Id struct {
	Id openapi_types.UUID `json:"id"`
}

type UpsertUser struct {
	Email string `json:"email"`
}

type UpsertUserResult struct {
	Id      openapi_types.UUID `json:"id"`
	Email   string             `json:"email"`
	Role    string             `json:"role"`
	Created bool               `json:"created"`
	Message string             `json:"message"`
}

type UserRole struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SetUserRole struct {
	Role string `json:"role"`
}

type UserRoleUpdated struct {
	Id   openapi_types.UUID `json:"id"`
	Role string             `json:"role"`
}

type User struct {
	Id        openapi_types.UUID `json:"id"`
	Email     string             `json:"email"`
	Role      string             `json:"role"`
	LastLogIn time.Time          `json:"last_log_in"`
}

type Party struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Region   string `json:"region"`
	District string `json:"district"`
	Address  string `json:"address"`
}

type NewParcel struct {
	CreatedBy string  `json:"created_by"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Weight    float64 `json:"weight"`
	Cost      int64   `json:"cost"`
	Sender    Party   `json:"sender"`
	Receiver  Party   `json:"receiver"`
}

type RiderAssignment struct {
	Id    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Phone string             `json:"phone"`
}

type Parcel struct {
	Id             openapi_types.UUID `json:"id"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      time.Time          `json:"createdAt"`
	Title          string             `json:"title"`
	Type           string             `json:"type"`
	Weight         float64            `json:"weight"`
	Cost           int64              `json:"cost"`
	Sender         Party              `json:"sender"`
	Receiver       Party              `json:"receiver"`
	DeliveryStatus string             `json:"delivery_status"`
	PaymentStatus  string             `json:"payment_status"`
	PaidAtTime     *time.Time         `json:"paidAtTime,omitempty"`
	Cashout        bool               `json:"cashout"`
	CashoutAt      *time.Time         `json:"cashoutAt,omitempty"`
	AssignedRider  *RiderAssignment   `json:"assigned_rider,omitempty"`
	PickedAt       *time.Time         `json:"pickedAt,omitempty"`
	DeliveredAt    *time.Time         `json:"deliveredAt,omitempty"`
}

type AssignRider struct {
	ParcelId string `json:"parcelId"`
	RiderId  string `json:"riderId"`
}

type AssignRiderResult struct {
	ParcelId       openapi_types.UUID `json:"parcelId"`
	RiderId        openapi_types.UUID `json:"riderId"`
	DeliveryStatus string             `json:"delivery_status"`
}

type DeliveryStatusUpdate struct {
	Status string `json:"status"`
}

type DeliveryStatusResult struct {
	Id             openapi_types.UUID `json:"id"`
	DeliveryStatus string             `json:"delivery_status"`
	RiderReleased  bool               `json:"riderReleased"`
}

type CashoutResult struct {
	Id        openapi_types.UUID `json:"id"`
	Cashout   bool               `json:"cashout"`
	CashoutAt time.Time          `json:"cashoutAt"`
}

type DeleteResult struct {
	DeletedCount int `json:"deletedCount"`
}

type NewRider struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Region   string `json:"region"`
	District string `json:"district"`
	Vehicle  string `json:"vehicle"`
}

type Rider struct {
	Id             openapi_types.UUID `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Region         string             `json:"region"`
	District       string             `json:"district"`
	Vehicle        string             `json:"vehicle"`
	ApprovalStatus string             `json:"approval_status"`
	Availability   string             `json:"availability"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type RiderApproval struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

type RiderApprovalResult struct {
	Id           openapi_types.UUID `json:"id"`
	Status       string             `json:"approval_status"`
	RoleElevated bool               `json:"roleElevated"`
}

type NewPayment struct {
	ParcelId      string `json:"parcelId"`
	Amount        int64  `json:"amount"`
	CreatedBy     string `json:"created_by"`
	PaymentMethod string `json:"payment_method"`
	TransactionId string `json:"transaction_id"`
}

type RecordPaymentResult struct {
	Message    string             `json:"message"`
	InsertedId openapi_types.UUID `json:"insertedId"`
}

type Payment struct {
	Id            openapi_types.UUID `json:"id"`
	ParcelId      openapi_types.UUID `json:"parcelId"`
	Amount        int64              `json:"amount"`
	CreatedBy     string             `json:"created_by"`
	PaymentMethod string             `json:"payment_method"`
	TransactionId string             `json:"transaction_id"`
	PaidAtTime    time.Time          `json:"paidAtTime"`
}

type PaymentIntentRequest struct {
	AmountInCents int64  `json:"amountInCents"`
	ParcelId      string `json:"parcelId"`
}

type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

type NewTrackingEvent struct {
	TrackingId string  `json:"trackingId"`
	ParcelId   *string `json:"parcelId,omitempty"`
	Status     string  `json:"status"`
	Details    string  `json:"details"`
	UpdatedBy  string  `json:"updated_by"`
}

type TrackingEvent struct {
	Id         openapi_types.UUID  `json:"id"`
	TrackingId string              `json:"trackingId"`
	ParcelId   *openapi_types.UUID `json:"parcelId,omitempty"`
	Status     string              `json:"status"`
	Details    string              `json:"details"`
	UpdatedBy  string              `json:"updated_by"`
	Timestamp  time.Time           `json:"timestamp"`
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func (p Party) toDomain() parcel.Party {
	return parcel.Party{Name: p.Name, Contact: p.Contact, Region: p.Region, District: p.District, Address: p.Address}
}

func toParty(p parcel.Party) Party {
	return Party{Name: p.Name, Contact: p.Contact, Region: p.Region, District: p.District, Address: p.Address}
}

func (p NewParcel) toDetails() parcel.Details {
	return parcel.Details{
		Title:    p.Title,
		Kind:     p.Type,
		WeightKg: p.Weight,
		Cost:     p.Cost,
		Sender:   p.Sender.toDomain(),
		Receiver: p.Receiver.toDomain(),
	}
}

func toParcel(v queries.ParcelView) Parcel {
	out := Parcel{
		Id:             v.ID.Bytes(),
		CreatedBy:      v.CreatedBy,
		CreatedAt:      v.CreatedAt,
		Title:          v.Details.Title,
		Type:           v.Details.Kind,
		Weight:         v.Details.WeightKg,
		Cost:           v.Details.Cost,
		Sender:         toParty(v.Details.Sender),
		Receiver:       toParty(v.Details.Receiver),
		DeliveryStatus: v.DeliveryStatus.String(),
		PaymentStatus:  v.PaymentStatus.String(),
		PaidAtTime:     v.PaidAt,
		Cashout:        v.Cashout,
		CashoutAt:      v.CashoutAt,
		PickedAt:       v.PickedAt,
		DeliveredAt:    v.DeliveredAt,
	}
	if v.Rider != nil {
		out.AssignedRider = &RiderAssignment{
			Id:    v.Rider.RiderID.Bytes(),
			Name:  v.Rider.Name,
			Email: v.Rider.Email,
			Phone: v.Rider.Phone,
		}
	}
	return out
}

func (r NewRider) toProfile() rider.Profile {
	return rider.Profile{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Region:   r.Region,
		District: r.District,
		Vehicle:  r.Vehicle,
	}
}

func toRider(v queries.RiderView) Rider {
	return Rider{
		Id:             v.ID.Bytes(),
		Name:           v.Profile.Name,
		Email:          v.Profile.Email,
		Phone:          v.Profile.Phone,
		Region:         v.Profile.Region,
		District:       v.Profile.District,
		Vehicle:        v.Profile.Vehicle,
		ApprovalStatus: v.ApprovalStatus.String(),
		Availability:   v.Availability.String(),
		CreatedAt:      v.CreatedAt,
	}
}

func toRiders(views []queries.RiderView) []Rider {
	out := make([]Rider, len(views))
	for i, v := range views {
		out[i] = toRider(v)
	}
	return out
}

func toPayment(v queries.PaymentView) Payment {
	return Payment{
		Id:            v.ID.Bytes(),
		ParcelId:      v.ParcelID.Bytes(),
		Amount:        v.Amount,
		CreatedBy:     v.CreatedBy,
		PaymentMethod: v.Method,
		TransactionId: v.TransactionID,
		PaidAtTime:    v.PaidAt,
	}
}

func toTrackingEvent(v queries.TrackingEventView) TrackingEvent {
	out := TrackingEvent{
		Id:         v.ID.Bytes(),
		TrackingId: v.TrackingID,
		Status:     v.Status,
		Details:    v.Details,
		UpdatedBy:  v.UpdatedBy,
		Timestamp:  v.At,
	}
	if v.ParcelID != nil {
		parcelID := v.ParcelID.Bytes()
		out.ParcelId = &parcelID
	}
	return out
}
