package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/guard"
)

var ErrSetRiderApprovalCommandIsNotConstructed = errors.New(
	"SetRiderApprovalCommand must be created via NewSetRiderApprovalCommand constructor",
)

// SetRiderApprovalCommand records an admin's decision on a rider.
type SetRiderApprovalCommand struct {
	riderID kernel.UUID
	status  rider.ApprovalStatus
	email   string

	guard guard.ConstructorGuard
}

// NewSetRiderApprovalCommand validates the decision.
//
// Parameters:
//   - status: approved, rejected or pending
//   - email: user to elevate on approval; empty means the rider's own email
func NewSetRiderApprovalCommand(riderID kernel.UUID, status, email string) (SetRiderApprovalCommand, error) {
	parsed, statusErr := rider.ParseApprovalStatus(status)

	var emailErr error
	if strings.TrimSpace(email) != "" {
		email, emailErr = user.NormalizeEmail(email)
	}

	if err := errors.Join(riderID.Validate(), statusErr, emailErr); err != nil {
		return SetRiderApprovalCommand{}, err
	}

	return SetRiderApprovalCommand{
		riderID: riderID,
		status:  parsed,
		email:   strings.TrimSpace(email),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetRiderApprovalCommand) RiderID() kernel.UUID         { return c.riderID }
func (c SetRiderApprovalCommand) Status() rider.ApprovalStatus { return c.status }
func (c SetRiderApprovalCommand) Email() string                { return c.email }

func (c SetRiderApprovalCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderApprovalCommandIsNotConstructed)
}
