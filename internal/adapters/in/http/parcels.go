package http

import (
	"net/http"

	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListParcels handles GET /parcels.
//
// Admins may list anything. Everybody else is scoped to parcels they sent
// or ride: with no email filter the caller's own parcels are listed.
func (s *Server) ListParcels(ctx echo.Context, params ListParcelsParams) error {
	reqCtx := ctx.Request().Context()
	actor, err := s.gate.Resolve(reqCtx, identityOf(ctx))
	if err != nil {
		return err
	}

	filter := queries.ParcelFilter{
		CreatedBy:      deref(params.Email),
		PaymentStatus:  deref(params.PaymentStatus),
		DeliveryStatus: deref(params.DeliveryStatus),
		RiderEmail:     deref(params.RiderEmail),
	}
	if err = scopeParcelFilter(actor, &filter); err != nil {
		return err
	}

	query, err := queries.NewListParcelsQuery(filter)
	if err != nil {
		return err
	}
	views, err := s.useCases.ListParcels.Handle(reqCtx, query)
	if err != nil {
		return err
	}

	response := make([]Parcel, len(views))
	for i, v := range views {
		response[i] = toParcel(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

func scopeParcelFilter(actor access.Actor, filter *queries.ParcelFilter) error {
	if actor.IsAdmin() {
		return nil
	}
	if filter.CreatedBy == "" && filter.RiderEmail == "" {
		filter.CreatedBy = actor.Email
		return nil
	}
	if filter.CreatedBy != "" && !actor.Is(filter.CreatedBy) {
		return errs.NewForbiddenError("cannot list parcels of another sender")
	}
	if filter.RiderEmail != "" && !actor.Is(filter.RiderEmail) {
		return errs.NewForbiddenError("cannot list parcels of another rider")
	}
	return nil
}

// CreateParcel handles POST /parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body NewParcel
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateParcelCommand(body.CreatedBy, body.toDetails())
	if err != nil {
		return err
	}
	id, err := s.useCases.CreateParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, Id{Id: id.Bytes()})
}

// GetParcel handles GET /parcels/{id}.
func (s *Server) GetParcel(ctx echo.Context, id openapi_types.UUID) error {
	reqCtx := ctx.Request().Context()
	parcelID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	query, err := queries.NewGetParcelQuery(parcelID)
	if err != nil {
		return err
	}
	view, err := s.useCases.GetParcel.Handle(reqCtx, query)
	if err != nil {
		return err
	}

	actor, err := s.gate.Resolve(reqCtx, identityOf(ctx))
	if err != nil {
		return err
	}
	riderEmail := ""
	if view.Rider != nil {
		riderEmail = view.Rider.Email
	}
	if err = actor.CanView(view.CreatedBy, riderEmail); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toParcel(view))
}

// DeleteParcel handles DELETE /parcels/{id}. Deleting a missing parcel
// reports a zero count.
func (s *Server) DeleteParcel(ctx echo.Context, id openapi_types.UUID) error {
	reqCtx := ctx.Request().Context()
	actor, parcelID, err := s.parcelActor(ctx, id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteParcelCommand(parcelID, actor)
	if err != nil {
		return err
	}
	deleted, err := s.useCases.DeleteParcel.Handle(reqCtx, cmd)
	if err != nil {
		return err
	}

	response := DeleteResult{}
	if deleted {
		response.DeletedCount = 1
	}
	return ctx.JSON(http.StatusOK, response)
}

// AssignRider handles PATCH /parcels/assign. Admin only.
func (s *Server) AssignRider(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actor, err := s.gate.Authorize(reqCtx, identityOf(ctx), user.RoleAdmin)
	if err != nil {
		return err
	}

	var body AssignRider
	if err = ctx.Bind(&body); err != nil {
		return err
	}
	parcelID, err := kernel.UUIDFromString(body.ParcelId)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("parcelId", err)
	}
	riderID, err := kernel.UUIDFromString(body.RiderId)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("riderId", err)
	}

	cmd, err := commands.NewAssignRiderCommand(parcelID, riderID, actor.Email)
	if err != nil {
		return err
	}
	if err = s.useCases.AssignRider.Handle(reqCtx, cmd); err != nil {
		s.observeConflict("assign", err)
		return err
	}

	if s.metrics != nil {
		s.metrics.Assignments.Inc()
	}
	return ctx.JSON(http.StatusOK, AssignRiderResult{
		ParcelId:       parcelID.Bytes(),
		RiderId:        riderID.Bytes(),
		DeliveryStatus: parcel.RidersAssigned.String(),
	})
}

// UpdateDeliveryStatus handles PATCH /parcels/{id}/delivery-status.
// The command checks that the caller is an admin or the assigned rider.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context, id openapi_types.UUID) error {
	actor, parcelID, err := s.parcelActor(ctx, id)
	if err != nil {
		return err
	}

	var body DeliveryStatusUpdate
	if err = ctx.Bind(&body); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateDeliveryStatusCommand(parcelID, body.Status, actor)
	if err != nil {
		return err
	}
	result, err := s.useCases.UpdateDeliveryStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.observeConflict("delivery-status", err)
		return err
	}

	if s.metrics != nil {
		s.metrics.StatusTransitions.WithLabelValues(result.Status.String()).Inc()
	}
	return ctx.JSON(http.StatusOK, DeliveryStatusResult{
		Id:             id,
		DeliveryStatus: result.Status.String(),
		RiderReleased:  result.RiderReleased,
	})
}

// CashoutParcel handles PATCH /parcels/cashout/{id}. A second cashout of
// the same parcel is a conflict.
func (s *Server) CashoutParcel(ctx echo.Context, id openapi_types.UUID) error {
	actor, parcelID, err := s.parcelActor(ctx, id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCashoutParcelCommand(parcelID, actor)
	if err != nil {
		return err
	}
	at, err := s.useCases.CashoutParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.observeConflict("cashout", err)
		return err
	}

	if s.metrics != nil {
		s.metrics.Cashouts.Inc()
	}
	return ctx.JSON(http.StatusOK, CashoutResult{Id: id, Cashout: true, CashoutAt: at})
}

// parcelActor resolves the caller and converts the path id.
func (s *Server) parcelActor(ctx echo.Context, id openapi_types.UUID) (access.Actor, kernel.UUID, error) {
	parcelID, err := toKernelUUID(id)
	if err != nil {
		return access.Actor{}, kernel.UUID{}, err
	}
	actor, err := s.gate.Resolve(ctx.Request().Context(), identityOf(ctx))
	if err != nil {
		return access.Actor{}, kernel.UUID{}, err
	}
	return actor, parcelID, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
