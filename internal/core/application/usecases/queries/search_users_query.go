package queries

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// SearchUsersLimit caps autocomplete results.
const SearchUsersLimit = 10

var ErrSearchUsersQueryIsNotConstructed = errors.New(
	"SearchUsersQuery must be created via NewSearchUsersQuery constructor",
)

// SearchUsersQuery finds users whose email starts with a prefix.
type SearchUsersQuery struct {
	prefix string

	guard guard.ConstructorGuard
}

func NewSearchUsersQuery(prefix string) (SearchUsersQuery, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return SearchUsersQuery{}, errs.NewValueIsRequiredError("email")
	}
	return SearchUsersQuery{prefix: prefix, guard: guard.NewConstructorGuard()}, nil
}

func (q SearchUsersQuery) Prefix() string { return q.prefix }

func (q SearchUsersQuery) Validate() error {
	return q.guard.Validate(ErrSearchUsersQueryIsNotConstructed)
}

// UserView is one search hit.
type UserView struct {
	ID        kernel.UUID
	Email     string
	Role      user.Role
	LastLogin time.Time
}
