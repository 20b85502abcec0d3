package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/tracking"
)

// PaymentRepository appends payment ledger entries. Entries are never
// updated or deleted.
type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
}

// TrackingRepository appends tracking events. Events are never updated or
// deleted.
type TrackingRepository interface {
	Append(ctx context.Context, event *tracking.Event) error
}

// TrackingPublisher fans committed tracking events out to other systems.
// Delivery is best-effort; callers log failures and carry on.
type TrackingPublisher interface {
	Publish(ctx context.Context, event *tracking.Event) error
}
