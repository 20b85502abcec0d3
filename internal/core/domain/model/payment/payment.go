// Package payment holds the immutable Payment ledger entry.
//
// A payment is appended only after its parcel has been atomically moved from
// unpaid to paid, so at most one payment exists per paid parcel.
package payment

import (
	"errors"
	"math"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment constructor")

// Payment records the outcome of a settled charge for a parcel.
// All fields are read-only once constructed.
type Payment struct {
	id            kernel.UUID
	parcelID      kernel.UUID
	amount        int64
	createdBy     string
	method        string
	transactionID string
	paidAt        time.Time

	guard guard.ConstructorGuard
}

// NewPayment builds a ledger entry.
//
// Parameters:
//   - amount: in the smallest currency unit; must be positive
//   - createdBy: payer email
//   - method, transactionID: as reported by the payment provider; optional
func NewPayment(
	id kernel.UUID,
	parcelID kernel.UUID,
	amount int64,
	createdBy string,
	method string,
	transactionID string,
	paidAt time.Time,
) (*Payment, error) {
	p := &Payment{
		method:        strings.TrimSpace(method),
		transactionID: strings.TrimSpace(transactionID),
		paidAt:        paidAt,
		guard:         guard.NewConstructorGuard(),
	}

	email, emailErr := user.NormalizeEmail(createdBy)
	var amountErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsOutOfRangeError("amount", amount, 1, int64(math.MaxInt64))
	}

	if err := errors.Join(
		id.Validate(),
		parcelID.Validate(),
		amountErr,
		emailErr,
	); err != nil {
		return nil, err
	}

	p.id = id
	p.parcelID = parcelID
	p.amount = amount
	p.createdBy = email
	return p, nil
}

// RestorePayment rebuilds a payment loaded from storage.
func RestorePayment(
	id kernel.UUID,
	parcelID kernel.UUID,
	amount int64,
	createdBy string,
	method string,
	transactionID string,
	paidAt time.Time,
) (*Payment, error) {
	return NewPayment(id, parcelID, amount, createdBy, method, transactionID, paidAt)
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID       { return p.id }
func (p *Payment) ParcelID() kernel.UUID { return p.parcelID }
func (p *Payment) Amount() int64         { return p.amount }
func (p *Payment) CreatedBy() string     { return p.createdBy }
func (p *Payment) Method() string        { return p.method }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) PaidAt() time.Time     { return p.paidAt }
