package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Every repository it hands out is bound to the same transaction once Begin
// has been called, so that multi-aggregate commands (assign, record payment)
// commit or roll back as a whole.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	UserRepository() UserRepository
	ParcelRepository() ParcelRepository
	RiderRepository() RiderRepository
	PaymentRepository() PaymentRepository
	TrackingRepository() TrackingRepository
}
