package commands

import (
	"context"
)

// SetUserRoleCommandHandler changes a user's role.
type SetUserRoleCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewSetUserRoleCommandHandler creates a handler for admin role changes.
func NewSetUserRoleCommandHandler(uowFactory UserUoWFactory) SetUserRoleCommandHandler {
	return SetUserRoleCommandHandler{uowFactory: uowFactory}
}

// Handle loads the user, sets the role and saves it.
// Returns errs.ErrObjectNotFound for an unknown user id.
func (h SetUserRoleCommandHandler) Handle(ctx context.Context, command SetUserRoleCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.Get(ctx, command.UserID())
	if err != nil {
		return err
	}

	if err = u.SetRole(command.Role()); err != nil {
		return err
	}

	if err = repo.Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
