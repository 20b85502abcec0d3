package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand books a new parcel for a sender.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand("a@x.com", parcel.Details{
//	    Title: "Documents", Cost: 150,
//	    Sender:   parcel.Party{District: "Dhaka"},
//	    Receiver: parcel.Party{District: "Khulna"},
//	})
type CreateParcelCommand struct {
	createdBy string
	details   parcel.Details

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand checks the sender email. Descriptive details are
// checked by the parcel aggregate.
func NewCreateParcelCommand(createdBy string, details parcel.Details) (CreateParcelCommand, error) {
	email, err := user.NormalizeEmail(createdBy)
	if err != nil {
		return CreateParcelCommand{}, err
	}

	return CreateParcelCommand{
		createdBy: email,
		details:   details,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateParcelCommand) CreatedBy() string       { return c.createdBy }
func (c CreateParcelCommand) Details() parcel.Details { return c.details }

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}
