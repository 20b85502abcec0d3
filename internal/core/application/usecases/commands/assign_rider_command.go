package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand binds a rider to a parcel.
//
// Example:
//
//	cmd, err := NewAssignRiderCommand(parcelID, riderID, "admin@x.com")
//	handler := NewAssignRiderCommandHandler(uowFactory, clock)
//	err = handler.Handle(ctx, cmd)
type AssignRiderCommand struct {
	parcelID   kernel.UUID
	riderID    kernel.UUID
	assignedBy string

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand validates both ids and the email of the admin
// performing the assignment.
func NewAssignRiderCommand(parcelID, riderID kernel.UUID, assignedBy string) (AssignRiderCommand, error) {
	email, emailErr := user.NormalizeEmail(assignedBy)
	if err := errors.Join(parcelID.Validate(), riderID.Validate(), emailErr); err != nil {
		return AssignRiderCommand{}, err
	}

	return AssignRiderCommand{
		parcelID:   parcelID,
		riderID:    riderID,
		assignedBy: email,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRiderCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c AssignRiderCommand) RiderID() kernel.UUID  { return c.riderID }
func (c AssignRiderCommand) AssignedBy() string    { return c.assignedBy }

func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}
