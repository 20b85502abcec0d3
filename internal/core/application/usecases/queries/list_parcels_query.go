package queries

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/guard"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// ParcelFilter narrows a parcel listing. Empty fields match everything.
type ParcelFilter struct {
	CreatedBy      string
	PaymentStatus  string
	DeliveryStatus string
	RiderEmail     string
}

// ListParcelsQuery lists parcels newest first.
type ListParcelsQuery struct {
	createdBy      string
	paymentStatus  parcel.PaymentStatus
	deliveryStatus parcel.DeliveryStatus
	riderEmail     string

	guard guard.ConstructorGuard
}

// NewListParcelsQuery validates every non-empty filter field.
func NewListParcelsQuery(filter ParcelFilter) (ListParcelsQuery, error) {
	q := ListParcelsQuery{}

	var errList []error
	if strings.TrimSpace(filter.CreatedBy) != "" {
		email, err := user.NormalizeEmail(filter.CreatedBy)
		errList = append(errList, err)
		q.createdBy = email
	}
	if strings.TrimSpace(filter.RiderEmail) != "" {
		email, err := user.NormalizeEmail(filter.RiderEmail)
		errList = append(errList, err)
		q.riderEmail = email
	}
	if filter.PaymentStatus != "" {
		status, err := parcel.ParsePaymentStatus(filter.PaymentStatus)
		errList = append(errList, err)
		q.paymentStatus = status
	}
	if filter.DeliveryStatus != "" {
		status, err := parcel.ParseDeliveryStatus(filter.DeliveryStatus)
		errList = append(errList, err)
		q.deliveryStatus = status
	}
	if err := errors.Join(errList...); err != nil {
		return ListParcelsQuery{}, err
	}

	q.guard = guard.NewConstructorGuard()
	return q, nil
}

func (q ListParcelsQuery) CreatedBy() string                     { return q.createdBy }
func (q ListParcelsQuery) PaymentStatus() parcel.PaymentStatus   { return q.paymentStatus }
func (q ListParcelsQuery) DeliveryStatus() parcel.DeliveryStatus { return q.deliveryStatus }
func (q ListParcelsQuery) RiderEmail() string                    { return q.riderEmail }

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}
