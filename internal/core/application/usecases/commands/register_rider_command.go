package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/guard"
)

var ErrRegisterRiderCommandIsNotConstructed = errors.New(
	"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
)

// RegisterRiderCommand submits a rider application.
type RegisterRiderCommand struct {
	profile rider.Profile

	guard guard.ConstructorGuard
}

// NewRegisterRiderCommand wraps the profile; the rider aggregate checks it.
func NewRegisterRiderCommand(profile rider.Profile) RegisterRiderCommand {
	return RegisterRiderCommand{
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}
}

func (c RegisterRiderCommand) Profile() rider.Profile { return c.profile }

func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}
