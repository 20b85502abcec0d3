package http

import (
	"net/http"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

// RegisterRider handles POST /riders. New riders are pending and idle.
func (s *Server) RegisterRider(ctx echo.Context) error {
	var body NewRider
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd := commands.NewRegisterRiderCommand(body.toProfile())
	id, err := s.useCases.RegisterRider.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, Id{Id: id.Bytes()})
}

// ListPendingRiders handles GET /riders/pending. Admin only.
func (s *Server) ListPendingRiders(ctx echo.Context) error {
	return s.listRiders(ctx, rider.Pending)
}

// ListApprovedRiders handles GET /riders/approved. Admin only.
func (s *Server) ListApprovedRiders(ctx echo.Context) error {
	return s.listRiders(ctx, rider.Approved)
}

func (s *Server) listRiders(ctx echo.Context, status rider.ApprovalStatus) error {
	reqCtx := ctx.Request().Context()
	if _, err := s.gate.Authorize(reqCtx, identityOf(ctx), user.RoleAdmin); err != nil {
		return err
	}

	query, err := queries.NewListRidersByStatusQuery(status.String())
	if err != nil {
		return err
	}
	views, err := s.useCases.ListRidersByStatus.Handle(reqCtx, query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toRiders(views))
}

// MatchRiders handles GET /riders?district=. The first district is the
// sender's, the optional second one the receiver's. Admin only.
func (s *Server) MatchRiders(ctx echo.Context, params MatchRidersParams) error {
	reqCtx := ctx.Request().Context()
	if _, err := s.gate.Authorize(reqCtx, identityOf(ctx), user.RoleAdmin); err != nil {
		return err
	}
	if len(params.District) > 2 {
		return errs.NewValueIsOutOfRangeError("district", len(params.District), 1, 2)
	}

	var sender, receiver string
	if len(params.District) > 0 {
		sender = params.District[0]
	}
	if len(params.District) > 1 {
		receiver = params.District[1]
	}

	query, err := queries.NewMatchRidersQuery(sender, receiver)
	if err != nil {
		return err
	}
	views, err := s.useCases.MatchRiders.Handle(reqCtx, query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toRiders(views))
}

// SetRiderApproval handles PATCH /riders/status/{id}. Admin only.
func (s *Server) SetRiderApproval(ctx echo.Context, id openapi_types.UUID) error {
	reqCtx := ctx.Request().Context()
	if _, err := s.gate.Authorize(reqCtx, identityOf(ctx), user.RoleAdmin); err != nil {
		return err
	}

	var body RiderApproval
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	riderID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetRiderApprovalCommand(riderID, body.Status, body.Email)
	if err != nil {
		return err
	}
	result, err := s.useCases.SetRiderApproval.Handle(reqCtx, cmd)
	if err != nil {
		return err
	}

	if result.Status == rider.Approved && !result.RoleElevated {
		s.logger.Info("rider approved without role change",
			zap.String("rider_id", riderID.String()),
			zap.String("email", body.Email),
		)
	}
	return ctx.JSON(http.StatusOK, RiderApprovalResult{
		Id:           id,
		Status:       result.Status.String(),
		RoleElevated: result.RoleElevated,
	})
}
