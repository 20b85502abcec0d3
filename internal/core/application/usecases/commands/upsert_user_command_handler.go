package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

// UpsertUserResult describes the stored user after an upsert.
type UpsertUserResult struct {
	UserID  kernel.UUID
	Role    user.Role
	Created bool
}

// UpsertUserCommandHandler creates users on first sign-in and stamps later
// logins. New users get user.RoleUser; roles are never taken from the caller.
type UpsertUserCommandHandler struct {
	uowFactory UserUoWFactory
	clock      kernel.Clock
}

// NewUpsertUserCommandHandler creates a handler for user upserts.
func NewUpsertUserCommandHandler(uowFactory UserUoWFactory, clock kernel.Clock) UpsertUserCommandHandler {
	return UpsertUserCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle upserts the user. Two first sign-ins racing on the same email are
// settled by the unique email index: the loser retries once and then finds
// the winner's row.
func (h UpsertUserCommandHandler) Handle(ctx context.Context, command UpsertUserCommand) (UpsertUserResult, error) {
	if err := command.Validate(); err != nil {
		return UpsertUserResult{}, err
	}

	result, err := h.upsert(ctx, command)
	if errors.Is(err, errs.ErrConflict) {
		return h.upsert(ctx, command)
	}
	return result, err
}

func (h UpsertUserCommandHandler) upsert(ctx context.Context, command UpsertUserCommand) (UpsertUserResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpsertUserResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	now := h.clock.Now()

	existing, err := repo.GetByEmail(ctx, command.Email())
	switch {
	case err == nil:
		existing.Touch(now)
		if err = repo.Update(ctx, existing); err != nil {
			return UpsertUserResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return UpsertUserResult{}, err
		}
		return UpsertUserResult{UserID: existing.ID(), Role: existing.Role()}, nil

	case errors.Is(err, errs.ErrObjectNotFound):
		created, newErr := user.NewUser(kernel.NewUUID(), command.Email(), user.RoleUser, now)
		if newErr != nil {
			return UpsertUserResult{}, newErr
		}
		if err = repo.Add(ctx, created); err != nil {
			return UpsertUserResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return UpsertUserResult{}, err
		}
		return UpsertUserResult{UserID: created.ID(), Role: created.Role(), Created: true}, nil

	default:
		return UpsertUserResult{}, err
	}
}
