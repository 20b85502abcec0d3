package parcel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// DeliveryStatus represents where a parcel is in its delivery pipeline.
//
// State transitions:
//
//	created ──assign──> riders-assigned ──> in-transit ──┬──> delivered
//	                                                     │
//	                                                     └──> delivered_service_center
//
// created is initial; delivered and delivered_service_center are terminal.
// Only the forward edges above are valid; anything else is reported as
// errs.ErrTransitionIsInvalid, which keeps the observed status sequence of a
// parcel non-decreasing.
type DeliveryStatus string

const (
	Created                DeliveryStatus = "created"
	RidersAssigned         DeliveryStatus = "riders-assigned"
	InTransit              DeliveryStatus = "in-transit"
	Delivered              DeliveryStatus = "delivered"
	DeliveredServiceCenter DeliveryStatus = "delivered_service_center"
)

// getTransitions returns the allowed next states for every known state.
func getTransitions() map[DeliveryStatus][]DeliveryStatus {
	return map[DeliveryStatus][]DeliveryStatus{
		Created:                {RidersAssigned},
		RidersAssigned:         {InTransit},
		InTransit:              {Delivered, DeliveredServiceCenter},
		Delivered:              nil,
		DeliveredServiceCenter: nil,
	}
}

// getRanks orders states along the pipeline. Both terminal states share the
// highest rank.
func getRanks() map[DeliveryStatus]int {
	return map[DeliveryStatus]int{
		Created:                0,
		RidersAssigned:         1,
		InTransit:              2,
		Delivered:              3,
		DeliveredServiceCenter: 3,
	}
}

// ParseDeliveryStatus converts a wire label into a DeliveryStatus.
//
// Returns:
//   - errs.ErrValueIsRequired for an empty label
//   - errs.ErrValueIsInvalid for an unrecognized label
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	if s == "" {
		return "", errs.NewValueIsRequiredError("status")
	}
	st := DeliveryStatus(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks that s is one of the known states.
func (s DeliveryStatus) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", string(s)))
	}
	return nil
}

// String returns the wire label.
func (s DeliveryStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s DeliveryStatus) IsTerminal() bool {
	return s == Delivered || s == DeliveredServiceCenter
}

// IsActive reports whether a rider is currently working on a parcel in
// this state.
func (s DeliveryStatus) IsActive() bool {
	return s == RidersAssigned || s == InTransit
}

// Rank returns the position of s along the pipeline, or -1 if s is unknown.
func (s DeliveryStatus) Rank() int {
	if r, ok := getRanks()[s]; ok {
		return r
	}
	return -1
}

// CanTransitionTo reports whether next directly follows s in the table.
//
// Example:
//
//	parcel.InTransit.CanTransitionTo(parcel.Delivered)  // nil
//	parcel.Delivered.CanTransitionTo(parcel.InTransit)  // transition is invalid
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewTransitionIsInvalidError("parcel", s.String(), next.String())
}

// PaymentStatus tracks whether a parcel has been paid for.
// It moves from unpaid to paid at most once.
type PaymentStatus string

const (
	Unpaid PaymentStatus = "unpaid"
	Paid   PaymentStatus = "paid"
)

// ParsePaymentStatus converts a wire label into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	ps := PaymentStatus(s)
	if err := ps.Validate(); err != nil {
		return "", err
	}
	return ps, nil
}

// Validate checks that s is unpaid or paid.
func (s PaymentStatus) Validate() error {
	if s != Unpaid && s != Paid {
		return errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%q is not a valid payment status", string(s)))
	}
	return nil
}

// String returns the wire label.
func (s PaymentStatus) String() string {
	return string(s)
}
