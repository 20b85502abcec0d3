package commands

import (
	"errors"
	"math"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand books a settled charge against a parcel.
type RecordPaymentCommand struct {
	parcelID      kernel.UUID
	amount        int64
	createdBy     string
	method        string
	transactionID string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand validates the payment.
//
// Parameters:
//   - amount: smallest currency unit, positive
//   - createdBy: payer email
//   - method, transactionID: as reported by the payment provider
func NewRecordPaymentCommand(
	parcelID kernel.UUID,
	amount int64,
	createdBy string,
	method string,
	transactionID string,
) (RecordPaymentCommand, error) {
	var amountErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsOutOfRangeError("amount", amount, 1, int64(math.MaxInt64))
	}
	email, emailErr := user.NormalizeEmail(createdBy)

	if err := errors.Join(parcelID.Validate(), amountErr, emailErr); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		parcelID:      parcelID,
		amount:        amount,
		createdBy:     email,
		method:        strings.TrimSpace(method),
		transactionID: strings.TrimSpace(transactionID),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c RecordPaymentCommand) Amount() int64         { return c.amount }
func (c RecordPaymentCommand) CreatedBy() string     { return c.createdBy }
func (c RecordPaymentCommand) Method() string        { return c.method }
func (c RecordPaymentCommand) TransactionID() string { return c.transactionID }

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}
