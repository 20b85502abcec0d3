package queries

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/guard"
)

var ErrListPaymentsQueryIsNotConstructed = errors.New(
	"ListPaymentsQuery must be created via NewListPaymentsQuery constructor",
)

// ListPaymentsQuery lists ledger entries, optionally only one payer's.
type ListPaymentsQuery struct {
	createdBy string

	guard guard.ConstructorGuard
}

// NewListPaymentsQuery accepts an empty createdBy for the admin's full view.
func NewListPaymentsQuery(createdBy string) (ListPaymentsQuery, error) {
	q := ListPaymentsQuery{}
	if strings.TrimSpace(createdBy) != "" {
		email, err := user.NormalizeEmail(createdBy)
		if err != nil {
			return ListPaymentsQuery{}, err
		}
		q.createdBy = email
	}
	q.guard = guard.NewConstructorGuard()
	return q, nil
}

func (q ListPaymentsQuery) CreatedBy() string { return q.createdBy }

func (q ListPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrListPaymentsQueryIsNotConstructed)
}

// PaymentView is one ledger entry.
type PaymentView struct {
	ID            kernel.UUID
	ParcelID      kernel.UUID
	Amount        int64
	CreatedBy     string
	Method        string
	TransactionID string
	PaidAt        time.Time
}
