// Package http is the inbound REST adapter. It binds requests, runs the
// access checks the core cannot make on its own and maps use case results
// to JSON.
package http

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/metrics"
	"parcelhub/internal/pkg/errs"

	"go.uber.org/zap"
)

// Handler is a use case returning a result.
type Handler[Q, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// Executor is a use case returning only an error.
type Executor[C any] interface {
	Handle(ctx context.Context, c C) error
}

// PaymentIntents creates payment intents with the payment provider.
type PaymentIntents interface {
	CreatePaymentIntent(ctx context.Context, amount int64) (string, error)
}

// UseCases groups every command and query handler the server calls.
type UseCases struct {
	UpsertUser           Handler[commands.UpsertUserCommand, commands.UpsertUserResult]
	SetUserRole          Executor[commands.SetUserRoleCommand]
	CreateParcel         Handler[commands.CreateParcelCommand, kernel.UUID]
	DeleteParcel         Handler[commands.DeleteParcelCommand, bool]
	AssignRider          Executor[commands.AssignRiderCommand]
	UpdateDeliveryStatus Handler[commands.UpdateDeliveryStatusCommand, commands.UpdateDeliveryStatusResult]
	CashoutParcel        Handler[commands.CashoutParcelCommand, time.Time]
	RegisterRider        Handler[commands.RegisterRiderCommand, kernel.UUID]
	SetRiderApproval     Handler[commands.SetRiderApprovalCommand, commands.SetRiderApprovalResult]
	RecordPayment        Handler[commands.RecordPaymentCommand, kernel.UUID]
	AppendTrackingEvent  Handler[commands.AppendTrackingEventCommand, kernel.UUID]

	GetUserRole        Handler[queries.GetUserRoleQuery, user.Role]
	SearchUsers        Handler[queries.SearchUsersQuery, []queries.UserView]
	ListParcels        Handler[queries.ListParcelsQuery, []queries.ParcelView]
	GetParcel          Handler[queries.GetParcelQuery, queries.ParcelView]
	ListRidersByStatus Handler[queries.ListRidersByStatusQuery, []queries.RiderView]
	MatchRiders        Handler[queries.MatchRidersQuery, []queries.RiderView]
	ListPayments       Handler[queries.ListPaymentsQuery, []queries.PaymentView]
	ListTrackingEvents Handler[queries.ListTrackingEventsQuery, []queries.TrackingEventView]
}

// Server implements ServerInterface.
type Server struct {
	useCases UseCases
	gate     *access.Gate
	payments PaymentIntents
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewServer creates a server. m may be nil.
func NewServer(
	useCases UseCases,
	gate *access.Gate,
	payments PaymentIntents,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		useCases: useCases,
		gate:     gate,
		payments: payments,
		metrics:  m,
		logger:   logger,
	}
}

// observeConflict counts lost guarded updates per operation.
func (s *Server) observeConflict(operation string, err error) {
	if s.metrics != nil && errors.Is(err, errs.ErrConflict) {
		s.metrics.ObserveConflict(operation)
	}
}
