package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// ErrUserIsNotConstructed is returned when a User was not created through
// NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

// User is the identity record consulted by the access gate.
//
// Invariants:
//   - email is normalized (trimmed, lower-case) and is the natural key
//   - role is always one of the known roles
//   - users are never deleted by the core; they are created on first sight
//     of an email and then only touched (lastLogin) or re-roled
type User struct {
	id        kernel.UUID
	email     string
	role      Role
	createdAt time.Time
	lastLogin time.Time

	guard guard.ConstructorGuard
}

// NewUser creates a user seen for the first time.
//
// Parameters:
//   - id: identifier of the new record
//   - email: address from the identity provider; normalized before storing
//   - role: initial role, usually RoleUser
//   - now: creation time, also recorded as the first login
//
// Example:
//
//	u, err := user.NewUser(kernel.NewUUID(), "Alice@Example.com", user.RoleUser, clock.Now())
//	// u.Email() == "alice@example.com"
func NewUser(id kernel.UUID, email string, role Role, now time.Time) (*User, error) {
	u := &User{
		createdAt: now,
		lastLogin: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a user loaded from storage.
func RestoreUser(id kernel.UUID, email string, role Role, createdAt, lastLogin time.Time) (*User, error) {
	u := &User{
		createdAt: createdAt,
		lastLogin: lastLogin,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// NormalizeEmail trims and lower-cases an address and checks it parses.
// Every lookup by email goes through this function so that "A@x.com" and
// "a@x.com" are the same user.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q: %w", email, err))
	}
	return normalized, nil
}

// Validate ensures the user was built by a constructor.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID { return u.id }

func (u *User) Email() string { return u.email }

func (u *User) Role() Role { return u.role }

func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) LastLogin() time.Time { return u.lastLogin }

// Touch stamps a new login. Earlier timestamps are ignored so that replayed
// upserts never move lastLogin backwards.
func (u *User) Touch(now time.Time) {
	if now.After(u.lastLogin) {
		u.lastLogin = now
	}
}

// SetRole changes the user's role.
//
// Returns errs.ErrValueIsInvalid for an unknown role and leaves the user
// unchanged in that case.
func (u *User) SetRole(role Role) error {
	return u.setRole(role)
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	u.email = normalized
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
