package http

import (
	"context"
	"net/http"
	"strings"

	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AppendTrackingEvent handles POST /trackings. Events are attributed to
// the caller; only admins may name someone else in updated_by.
func (s *Server) AppendTrackingEvent(ctx echo.Context) error {
	var body NewTrackingEvent
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	var parcelID *kernel.UUID
	if body.ParcelId != nil && *body.ParcelId != "" {
		id, err := kernel.UUIDFromString(*body.ParcelId)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("parcelId", err)
		}
		parcelID = &id
	}
	reqCtx := ctx.Request().Context()
	updatedBy, err := s.trackingAuthor(reqCtx, identityOf(ctx), body.UpdatedBy)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAppendTrackingEventCommand(body.TrackingId, parcelID, body.Status, body.Details, updatedBy)
	if err != nil {
		return err
	}
	id, err := s.useCases.AppendTrackingEvent.Handle(reqCtx, cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, Id{Id: id.Bytes()})
}

// ListTrackingEvents handles GET /trackings/{trackingId}, oldest first.
func (s *Server) ListTrackingEvents(ctx echo.Context, trackingID string) error {
	query, err := queries.NewListTrackingEventsQuery(trackingID)
	if err != nil {
		return err
	}
	views, err := s.useCases.ListTrackingEvents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]TrackingEvent, len(views))
	for i, v := range views {
		response[i] = toTrackingEvent(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) trackingAuthor(ctx context.Context, id access.Identity, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" || strings.EqualFold(requested, id.Email) {
		return id.Email, nil
	}

	if _, err := s.gate.Authorize(ctx, id, user.RoleAdmin); err != nil {
		return "", errs.NewForbiddenError("updated_by must be the caller")
	}
	return requested, nil
}
