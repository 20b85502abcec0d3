// Package postgres provides the GORM-based Unit of Work of the parcel
// service and the helpers that open and migrate its database.
//
// Key Features:
//   - Transaction management across the user, parcel, rider, payment and
//     tracking repositories
//   - Aggregate tracking, used to publish tracking events after commit
//   - Proper isolation between concurrent operations
//
// Usage Patterns:
//
//	factory := NewGormUnitOfWorkFactory(db, WithTrackingPublisher(publisher, logger))
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	// All operations within same transaction
//	if err := uow.ParcelRepository().UpdateDelivery(ctx, p, from); err != nil {
//	    return err
//	}
//	if err := uow.RiderRepository().UpdateAvailability(ctx, r, rider.InDelivery); err != nil {
//	    return err
//	}
//	if err := uow.TrackingRepository().Append(ctx, event); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // event is published here
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Repositories guard state changes with conditional updates; a lost race
//     surfaces as errs.ErrConflict and the whole transaction rolls back
package postgres

import (
	"context"
	"time"

	"parcelhub/internal/adapters/out/postgres/ledgerrepo"
	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/adapters/out/postgres/riderrepo"
	"parcelhub/internal/adapters/out/postgres/userrepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// DefaultPublishTimeout bounds how long Commit waits for the tracking
// publisher before giving up on the remaining events.
const DefaultPublishTimeout = 2 * time.Second

// Option configures a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithTrackingPublisher makes every committed unit of work hand its appended
// tracking events to publisher. Publish failures are logged and otherwise
// ignored: the events are already durable in the tracking log.
func WithTrackingPublisher(publisher ports.TrackingPublisher, logger *zap.Logger) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.publisher = publisher
		f.logger = logger
	}
}

// WithPublishTimeout overrides DefaultPublishTimeout.
func WithPublishTimeout(d time.Duration) Option {
	return func(f *GormUnitOfWorkFactory) {
		if d > 0 {
			f.publishTimeout = d
		}
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db             *gorm.DB
	publisher      ports.TrackingPublisher
	publishTimeout time.Duration
	logger         *zap.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := postgres.Open(dsn)
//	if err != nil {
//	    return err
//	}
//	factory := postgres.NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db, publishTimeout: DefaultPublishTimeout, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		publishTimeout:    f.publishTimeout,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations.
//
// Aggregates written through its repositories are remembered until the
// transaction ends. On a successful Commit the tracked tracking events are
// published; on Rollback they are dropped.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.TrackingPublisher
	publishTimeout    time.Duration
	logger            *zap.Logger
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction and then
// publishes the tracking events appended in it.
//
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if err != nil {
		return err
	}

	uow.publish(ctx, tracked)
	return nil
}

// Rollback discards all changes made within the current transaction.
//
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = make([]trackedAggregate, 0)
	return err
}

// UserRepository provides access to user persistence within the unit of work.
// Repository operations will execute within the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

// ParcelRepository provides access to parcel persistence within the unit of work.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

// RiderRepository provides access to rider persistence within the unit of work.
func (uow *GormUnitOfWork) RiderRepository() ports.RiderRepository {
	return riderrepo.NewGormRiderRepository(uow.conn(), uow)
}

// PaymentRepository provides access to the payment ledger within the unit of work.
func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return ledgerrepo.NewGormPaymentRepository(uow.conn(), uow)
}

// TrackingRepository provides access to the tracking log within the unit of work.
func (uow *GormUnitOfWork) TrackingRepository() ports.TrackingRepository {
	return ledgerrepo.NewGormTrackingRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repository implementations call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publish(ctx context.Context, tracked []trackedAggregate) {
	if uow.publisher == nil {
		return
	}

	// The transaction is already committed: a cancelled request must not
	// drop the events, and a slow broker must not hold the response.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uow.publishTimeout)
	defer cancel()

	for _, t := range tracked {
		event, ok := t.Aggregate.(*tracking.Event)
		if !ok {
			continue
		}
		if err := uow.publisher.Publish(ctx, event); err != nil {
			uow.logger.Warn("tracking event not published",
				zap.String("event_id", t.ID.String()),
				zap.String("tracking_id", event.TrackingID()),
				zap.Error(err))
		}
	}
}
