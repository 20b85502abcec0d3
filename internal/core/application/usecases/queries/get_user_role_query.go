package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/guard"
)

var ErrGetUserRoleQueryIsNotConstructed = errors.New(
	"GetUserRoleQuery must be created via NewGetUserRoleQuery constructor",
)

// GetUserRoleQuery looks up the role stored for an email.
type GetUserRoleQuery struct {
	email string

	guard guard.ConstructorGuard
}

// NewGetUserRoleQuery normalizes the email.
func NewGetUserRoleQuery(email string) (GetUserRoleQuery, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return GetUserRoleQuery{}, err
	}
	return GetUserRoleQuery{email: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserRoleQuery) Email() string { return q.email }

func (q GetUserRoleQuery) Validate() error {
	return q.guard.Validate(ErrGetUserRoleQueryIsNotConstructed)
}
