package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/guard"
)

var ErrSetUserRoleCommandIsNotConstructed = errors.New(
	"SetUserRoleCommand must be created via NewSetUserRoleCommand constructor",
)

// SetUserRoleCommand is an admin assigning an arbitrary role to a user.
type SetUserRoleCommand struct {
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

// NewSetUserRoleCommand validates the target id and role.
func NewSetUserRoleCommand(userID kernel.UUID, role string) (SetUserRoleCommand, error) {
	parsed, roleErr := user.ParseRole(role)
	if err := errors.Join(userID.Validate(), roleErr); err != nil {
		return SetUserRoleCommand{}, err
	}

	return SetUserRoleCommand{
		userID: userID,
		role:   parsed,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c SetUserRoleCommand) UserID() kernel.UUID { return c.userID }
func (c SetUserRoleCommand) Role() user.Role     { return c.role }

func (c SetUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrSetUserRoleCommandIsNotConstructed)
}
