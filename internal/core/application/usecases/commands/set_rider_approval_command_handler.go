package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

// SetRiderApprovalResult reports what the approval changed.
type SetRiderApprovalResult struct {
	Status       rider.ApprovalStatus
	RoleElevated bool
}

// SetRiderApprovalCommandHandler approves or rejects riders.
//
// The rider record is the source of truth for approval. On approval the
// matching user is elevated to user.RoleRider as a best-effort
// denormalization: a missing user is not an error and admins keep their
// role.
type SetRiderApprovalCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewSetRiderApprovalCommandHandler creates a handler for rider approval.
// The RiderUoWFactory exposes the user repository for role elevation.
func NewSetRiderApprovalCommandHandler(uowFactory RiderUoWFactory) SetRiderApprovalCommandHandler {
	return SetRiderApprovalCommandHandler{uowFactory: uowFactory}
}

// Handle applies the decision.
func (h SetRiderApprovalCommandHandler) Handle(
	ctx context.Context, command SetRiderApprovalCommand,
) (SetRiderApprovalResult, error) {
	if err := command.Validate(); err != nil {
		return SetRiderApprovalResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SetRiderApprovalResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	riderRepo := uow.RiderRepository()
	r, err := riderRepo.GetForUpdate(ctx, command.RiderID())
	if err != nil {
		return SetRiderApprovalResult{}, err
	}

	if err = r.SetApproval(command.Status()); err != nil {
		return SetRiderApprovalResult{}, err
	}

	if err = riderRepo.UpdateApproval(ctx, r); err != nil {
		return SetRiderApprovalResult{}, err
	}

	elevated := false
	if command.Status() == rider.Approved {
		email := command.Email()
		if email == "" {
			email = r.Email()
		}
		if elevated, err = h.elevate(ctx, uow, email); err != nil {
			return SetRiderApprovalResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return SetRiderApprovalResult{}, err
	}

	return SetRiderApprovalResult{Status: r.ApprovalStatus(), RoleElevated: elevated}, nil
}

func (h SetRiderApprovalCommandHandler) elevate(ctx context.Context, uow RiderUoW, email string) (bool, error) {
	userRepo := uow.UserRepository()

	u, err := userRepo.GetByEmail(ctx, email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if u.Role() == user.RoleRider || u.Role().IsAdmin() {
		return false, nil
	}

	if err = u.SetRole(user.RoleRider); err != nil {
		return false, err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return false, err
	}

	return true, nil
}
