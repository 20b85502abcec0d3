// Package ports defines the persistence contracts of the parcel domain.
// Adapters in internal/adapters/out implement them; use cases depend only on
// these interfaces.
package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user. Returns errs.ErrConflict if the email is taken.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists role and last login of an existing user.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user by identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves a user by normalized email.
	// Returns errs.ErrObjectNotFound when the email has never been seen.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
