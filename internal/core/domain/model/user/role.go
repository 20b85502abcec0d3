package user

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Role classifies a caller for authorization purposes.
//
// Role values are persisted and sent over the wire as their lower-case
// labels. RoleNone is the role of an email the system has never seen.
type Role string

const (
	RoleNone  Role = "none"
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

// ParseRole converts a wire label into a Role.
//
// Returns errs.ErrValueIsInvalid for any label other than
// "none", "user", "rider" or "admin".
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate checks that r is one of the known roles.
func (r Role) Validate() error {
	switch r {
	case RoleNone, RoleUser, RoleRider, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// String returns the wire label.
func (r Role) String() string {
	return string(r)
}

// IsAdmin reports whether r is RoleAdmin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
