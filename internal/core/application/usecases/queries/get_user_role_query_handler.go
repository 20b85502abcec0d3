package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/user"

	"gorm.io/gorm"
)

// GetUserRoleQueryHandler reads roles for the access gate and for the
// public role lookup endpoint. An email that was never seen has
// user.RoleNone.
type GetUserRoleQueryHandler struct {
	db *gorm.DB
}

func NewGetUserRoleQueryHandler(db *gorm.DB) GetUserRoleQueryHandler {
	return GetUserRoleQueryHandler{db: db}
}

// Handle returns the stored role.
func (h GetUserRoleQueryHandler) Handle(ctx context.Context, query GetUserRoleQuery) (user.Role, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	var roles []string
	err := h.db.WithContext(ctx).Raw(`
		SELECT role
		FROM users
		WHERE email = ?
		LIMIT 1
	`, query.Email()).Scan(&roles).Error
	if err != nil {
		return "", err
	}

	if len(roles) == 0 {
		return user.RoleNone, nil
	}
	return user.ParseRole(roles[0])
}

// LookupRole adapts the handler to access.RoleLookup.
func (h GetUserRoleQueryHandler) LookupRole(ctx context.Context, email string) (user.Role, error) {
	query, err := NewGetUserRoleQuery(email)
	if err != nil {
		return "", err
	}
	return h.Handle(ctx, query)
}
