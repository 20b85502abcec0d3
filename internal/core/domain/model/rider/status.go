package rider

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// ApprovalStatus is the admin decision on a rider application.
type ApprovalStatus string

const (
	Pending  ApprovalStatus = "pending"
	Approved ApprovalStatus = "approved"
	Rejected ApprovalStatus = "rejected"
)

// ParseApprovalStatus converts a wire label into an ApprovalStatus.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	if s == "" {
		return "", errs.NewValueIsRequiredError("status")
	}
	st := ApprovalStatus(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks that s is pending, approved or rejected.
func (s ApprovalStatus) Validate() error {
	switch s {
	case Pending, Approved, Rejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("approval_status", fmt.Errorf("%q is not a valid approval status", string(s)))
	}
}

func (s ApprovalStatus) String() string { return string(s) }

// Availability tells whether a rider is currently carrying parcels.
//
// InDelivery implies that at least one parcel assigned to the rider is still
// active (riders-assigned or in-transit). The reconciliation job reports and
// repairs riders that break this rule.
type Availability string

const (
	Idle       Availability = "idle"
	InDelivery Availability = "in-delivery"
)

// Validate checks that a is idle or in-delivery.
func (a Availability) Validate() error {
	if a != Idle && a != InDelivery {
		return errs.NewValueIsInvalidErrorWithCause("availability", fmt.Errorf("%q is not a valid availability", string(a)))
	}
	return nil
}

func (a Availability) String() string { return string(a) }
