package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/guard"
)

var ErrUpsertUserCommandIsNotConstructed = errors.New(
	"UpsertUserCommand must be created via NewUpsertUserCommand constructor",
)

// UpsertUserCommand records that a person signed in: the user is created
// on first sight of the email and its last login is stamped otherwise.
type UpsertUserCommand struct {
	email string

	guard guard.ConstructorGuard
}

// NewUpsertUserCommand normalizes and checks email.
func NewUpsertUserCommand(email string) (UpsertUserCommand, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return UpsertUserCommand{}, err
	}

	return UpsertUserCommand{
		email: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c UpsertUserCommand) Email() string { return c.email }

// Validate ensures the command was created through the constructor.
func (c UpsertUserCommand) Validate() error {
	return c.guard.Validate(ErrUpsertUserCommandIsNotConstructed)
}
