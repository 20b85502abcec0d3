package http

import (
	"net/http"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RecordPayment handles POST /payments. The parcel is marked paid and the
// ledger entry appended in one transaction; an already paid parcel is a
// conflict and leaves no entry behind.
func (s *Server) RecordPayment(ctx echo.Context) error {
	var body NewPayment
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	parcelID, err := kernel.UUIDFromString(body.ParcelId)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("parcelId", err)
	}

	cmd, err := commands.NewRecordPaymentCommand(parcelID, body.Amount, body.CreatedBy, body.PaymentMethod, body.TransactionId)
	if err != nil {
		return err
	}
	id, err := s.useCases.RecordPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.observeConflict("payment", err)
		return err
	}

	if s.metrics != nil {
		s.metrics.PaymentsRecorded.Inc()
	}
	return ctx.JSON(http.StatusOK, RecordPaymentResult{
		Message:    "Payment recorded, parcel updated",
		InsertedId: id.Bytes(),
	})
}

// ListPayments handles GET /payments?email=. Callers see their own
// payments; admins may see anyone's, or all of them without a filter.
func (s *Server) ListPayments(ctx echo.Context, params ListPaymentsParams) error {
	reqCtx := ctx.Request().Context()
	id := identityOf(ctx)
	email := deref(params.Email)

	if email != "" {
		if _, err := s.gate.AuthorizeSelfOrAdmin(reqCtx, id, email); err != nil {
			return err
		}
	} else {
		actor, err := s.gate.Resolve(reqCtx, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			email = actor.Email
		}
	}

	query, err := queries.NewListPaymentsQuery(email)
	if err != nil {
		return err
	}
	views, err := s.useCases.ListPayments.Handle(reqCtx, query)
	if err != nil {
		return err
	}

	response := make([]Payment, len(views))
	for i, v := range views {
		response[i] = toPayment(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreatePaymentIntent handles POST /create-payment-intent.
func (s *Server) CreatePaymentIntent(ctx echo.Context) error {
	var body PaymentIntentRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	secret, err := s.payments.CreatePaymentIntent(ctx.Request().Context(), body.AmountInCents)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, PaymentIntent{ClientSecret: secret})
}
