package cmd

import (
	"context"
	"fmt"

	"parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/firebase"
	"parcelhub/internal/adapters/out/kafka"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/adapters/out/stripe"
	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/jobs"
	"parcelhub/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	clock      kernel.Clock
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	publisher  *kafka.TrackingPublisher
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	var opts []postgres.Option
	var publisher *kafka.TrackingPublisher
	if cfg.KafkaHost != "" {
		publisher = kafka.NewTrackingPublisher(cfg.KafkaHost, cfg.KafkaTrackingTopic, m)
		opts = append(opts, postgres.WithTrackingPublisher(publisher, logger))
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		clock:      kernel.SystemClock{},
		registry:   registry,
		metrics:    m,
		publisher:  publisher,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, opts...),
	}
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) Gatherer() prometheus.Gatherer {
	return c.registry
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateUpsertUserCommandHandler() commands.UpsertUserCommandHandler {
	return commands.NewUpsertUserCommandHandler(c.userUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSetUserRoleCommandHandler() commands.SetUserRoleCommandHandler {
	return commands.NewSetUserRoleCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcelUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	return commands.NewDeleteParcelCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCashoutParcelCommandHandler() commands.CashoutParcelCommandHandler {
	return commands.NewCashoutParcelCommandHandler(c.parcelUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.fullUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.fullUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	return commands.NewRegisterRiderCommandHandler(c.riderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSetRiderApprovalCommandHandler() commands.SetRiderApprovalCommandHandler {
	return commands.NewSetRiderApprovalCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.fullUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAppendTrackingEventCommandHandler() commands.AppendTrackingEventCommandHandler {
	return commands.NewAppendTrackingEventCommandHandler(c.trackingUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReconcileRidersCommandHandler() commands.ReconcileRidersCommandHandler {
	return commands.NewReconcileRidersCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateGetUserRoleQueryHandler() queries.GetUserRoleQueryHandler {
	return queries.NewGetUserRoleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchUsersQueryHandler() queries.SearchUsersQueryHandler {
	return queries.NewSearchUsersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRidersByStatusQueryHandler() queries.ListRidersByStatusQueryHandler {
	return queries.NewListRidersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateMatchRidersQueryHandler() queries.MatchRidersQueryHandler {
	return queries.NewMatchRidersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPaymentsQueryHandler() queries.ListPaymentsQueryHandler {
	return queries.NewListPaymentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListTrackingEventsQueryHandler() queries.ListTrackingEventsQueryHandler {
	return queries.NewListTrackingEventsQueryHandler(c.gormDB)
}

// UseCases collects the handlers the HTTP server calls.
func (c *CompositionRoot) UseCases() http.UseCases {
	return http.UseCases{
		UpsertUser:           c.CreateUpsertUserCommandHandler(),
		SetUserRole:          c.CreateSetUserRoleCommandHandler(),
		CreateParcel:         c.CreateCreateParcelCommandHandler(),
		DeleteParcel:         c.CreateDeleteParcelCommandHandler(),
		AssignRider:          c.CreateAssignRiderCommandHandler(),
		UpdateDeliveryStatus: c.CreateUpdateDeliveryStatusCommandHandler(),
		CashoutParcel:        c.CreateCashoutParcelCommandHandler(),
		RegisterRider:        c.CreateRegisterRiderCommandHandler(),
		SetRiderApproval:     c.CreateSetRiderApprovalCommandHandler(),
		RecordPayment:        c.CreateRecordPaymentCommandHandler(),
		AppendTrackingEvent:  c.CreateAppendTrackingEventCommandHandler(),

		GetUserRole:        c.CreateGetUserRoleQueryHandler(),
		SearchUsers:        c.CreateSearchUsersQueryHandler(),
		ListParcels:        c.CreateListParcelsQueryHandler(),
		GetParcel:          c.CreateGetParcelQueryHandler(),
		ListRidersByStatus: c.CreateListRidersByStatusQueryHandler(),
		MatchRiders:        c.CreateMatchRidersQueryHandler(),
		ListPayments:       c.CreateListPaymentsQueryHandler(),
		ListTrackingEvents: c.CreateListTrackingEventsQueryHandler(),
	}
}

// CreateGate verifies tokens with Firebase and reads roles from the users table.
func (c *CompositionRoot) CreateGate(ctx context.Context) (*access.Gate, error) {
	verifier, err := firebase.NewTokenVerifier(ctx, c.cfg.FirebaseProjectID, c.cfg.FirebaseCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("create token verifier: %w", err)
	}
	return access.NewGate(verifier, c.CreateGetUserRoleQueryHandler()), nil
}

func (c *CompositionRoot) CreatePaymentGateway() *stripe.PaymentGateway {
	return stripe.NewPaymentGateway(c.cfg.PaymentGatewayKey)
}

func (c *CompositionRoot) CreateServer(gate *access.Gate) *http.Server {
	return http.NewServer(c.UseCases(), gate, c.CreatePaymentGateway(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reconciliation := jobs.NewReconciliationJob(
		c.CreateReconcileRidersCommandHandler(),
		c.cfg.ReconcileSchedule,
		c.cfg.ReconcileRepair,
		c.metrics,
		c.logger,
	)
	return jobs.NewJobManager(reconciliation)
}

// Close releases the outbound connections the root opened.
func (c *CompositionRoot) Close() error {
	if c.publisher == nil {
		return nil
	}
	return c.publisher.Close()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
