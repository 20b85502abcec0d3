// Package userrepo persists user aggregates with GORM.
package userrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the row of the users table. Email is unique so that two
// concurrent first logins of the same person cannot create two users.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(320);not null;uniqueIndex:idx_users_email"`
	Role      string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	LastLogin time.Time `gorm:"not null"`
}

// TableName overrides GORM's default "user_dtos".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID().Bytes(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
		LastLogin: u.LastLogin(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Email, role, dto.CreatedAt, dto.LastLogin)
}
