package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListParcelsParams defines parameters for ListParcels.
type ListParcelsParams struct {
	Email          *string `form:"email,omitempty" json:"email,omitempty"`
	PaymentStatus  *string `form:"payment_status,omitempty" json:"payment_status,omitempty"`
	DeliveryStatus *string `form:"delivery_status,omitempty" json:"delivery_status,omitempty"`
	RiderEmail     *string `form:"rider_email,omitempty" json:"rider_email,omitempty"`
}

// SearchUsersParams defines parameters for SearchUsers.
type SearchUsersParams struct {
	Email string `form:"email" json:"email"`
}

// MatchRidersParams defines parameters for MatchRiders.
type MatchRidersParams struct {
	District []string `form:"district" json:"district"`
}

// ListPaymentsParams defines parameters for ListPayments.
type ListPaymentsParams struct {
	Email *string `form:"email,omitempty" json:"email,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /users)
	UpsertUser(ctx echo.Context) error
	// (GET /users/search)
	SearchUsers(ctx echo.Context, params SearchUsersParams) error
	// (GET /users/role/{email})
	GetUserRole(ctx echo.Context, email string) error
	// (PATCH /users/role/{id})
	SetUserRole(ctx echo.Context, id openapi_types.UUID) error

	// (GET /parcels)
	ListParcels(ctx echo.Context, params ListParcelsParams) error
	// (POST /parcels)
	CreateParcel(ctx echo.Context) error
	// (PATCH /parcels/assign)
	AssignRider(ctx echo.Context) error
	// (PATCH /parcels/cashout/{id})
	CashoutParcel(ctx echo.Context, id openapi_types.UUID) error
	// (GET /parcels/{id})
	GetParcel(ctx echo.Context, id openapi_types.UUID) error
	// (DELETE /parcels/{id})
	DeleteParcel(ctx echo.Context, id openapi_types.UUID) error
	// (PATCH /parcels/{id}/delivery-status)
	UpdateDeliveryStatus(ctx echo.Context, id openapi_types.UUID) error

	// (GET /riders)
	MatchRiders(ctx echo.Context, params MatchRidersParams) error
	// (POST /riders)
	RegisterRider(ctx echo.Context) error
	// (GET /riders/pending)
	ListPendingRiders(ctx echo.Context) error
	// (GET /riders/approved)
	ListApprovedRiders(ctx echo.Context) error
	// (PATCH /riders/status/{id})
	SetRiderApproval(ctx echo.Context, id openapi_types.UUID) error

	// (GET /payments)
	ListPayments(ctx echo.Context, params ListPaymentsParams) error
	// (POST /payments)
	RecordPayment(ctx echo.Context) error
	// (POST /create-payment-intent)
	CreatePaymentIntent(ctx echo.Context) error

	// (POST /trackings)
	AppendTrackingEvent(ctx echo.Context) error
	// (GET /trackings/{trackingId})
	ListTrackingEvents(ctx echo.Context, trackingID string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindPathString(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func bindQuery(ctx echo.Context, name string, required bool, dest any) error {
	err := runtime.BindQueryParameter("form", true, required, name, ctx.QueryParams(), dest)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) UpsertUser(ctx echo.Context) error {
	return w.Handler.UpsertUser(ctx)
}

func (w *ServerInterfaceWrapper) SearchUsers(ctx echo.Context) error {
	var params SearchUsersParams
	if err := bindQuery(ctx, "email", true, &params.Email); err != nil {
		return err
	}
	return w.Handler.SearchUsers(ctx, params)
}

func (w *ServerInterfaceWrapper) GetUserRole(ctx echo.Context) error {
	email, err := bindPathString(ctx, "email")
	if err != nil {
		return err
	}
	return w.Handler.GetUserRole(ctx, email)
}

func (w *ServerInterfaceWrapper) SetUserRole(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.SetUserRole(ctx, id)
}

func (w *ServerInterfaceWrapper) ListParcels(ctx echo.Context) error {
	var params ListParcelsParams
	for name, dest := range map[string]**string{
		"email":           &params.Email,
		"payment_status":  &params.PaymentStatus,
		"delivery_status": &params.DeliveryStatus,
		"rider_email":     &params.RiderEmail,
	} {
		if err := bindQuery(ctx, name, false, dest); err != nil {
			return err
		}
	}
	return w.Handler.ListParcels(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateParcel(ctx echo.Context) error {
	return w.Handler.CreateParcel(ctx)
}

func (w *ServerInterfaceWrapper) AssignRider(ctx echo.Context) error {
	return w.Handler.AssignRider(ctx)
}

func (w *ServerInterfaceWrapper) CashoutParcel(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.CashoutParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) GetParcel(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteParcel(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.DeleteParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateDeliveryStatus(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateDeliveryStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) MatchRiders(ctx echo.Context) error {
	var params MatchRidersParams
	if err := bindQuery(ctx, "district", true, &params.District); err != nil {
		return err
	}
	return w.Handler.MatchRiders(ctx, params)
}

func (w *ServerInterfaceWrapper) RegisterRider(ctx echo.Context) error {
	return w.Handler.RegisterRider(ctx)
}

func (w *ServerInterfaceWrapper) ListPendingRiders(ctx echo.Context) error {
	return w.Handler.ListPendingRiders(ctx)
}

func (w *ServerInterfaceWrapper) ListApprovedRiders(ctx echo.Context) error {
	return w.Handler.ListApprovedRiders(ctx)
}

func (w *ServerInterfaceWrapper) SetRiderApproval(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.SetRiderApproval(ctx, id)
}

func (w *ServerInterfaceWrapper) ListPayments(ctx echo.Context) error {
	var params ListPaymentsParams
	if err := bindQuery(ctx, "email", false, &params.Email); err != nil {
		return err
	}
	return w.Handler.ListPayments(ctx, params)
}

func (w *ServerInterfaceWrapper) RecordPayment(ctx echo.Context) error {
	return w.Handler.RecordPayment(ctx)
}

func (w *ServerInterfaceWrapper) CreatePaymentIntent(ctx echo.Context) error {
	return w.Handler.CreatePaymentIntent(ctx)
}

func (w *ServerInterfaceWrapper) AppendTrackingEvent(ctx echo.Context) error {
	return w.Handler.AppendTrackingEvent(ctx)
}

func (w *ServerInterfaceWrapper) ListTrackingEvents(ctx echo.Context) error {
	trackingID, err := bindPathString(ctx, "trackingId")
	if err != nil {
		return err
	}
	return w.Handler.ListTrackingEvents(ctx, trackingID)
}

// EchoRouter is implemented by both echo.Echo and echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router. Routes that need a
// caller identity run behind authenticate.
func RegisterHandlers(router EchoRouter, si ServerInterface, authenticate echo.MiddlewareFunc) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/users", w.UpsertUser)
	router.GET("/users/search", w.SearchUsers, authenticate)
	router.GET("/users/role/:email", w.GetUserRole)
	router.PATCH("/users/role/:id", w.SetUserRole, authenticate)

	router.GET("/parcels", w.ListParcels, authenticate)
	router.POST("/parcels", w.CreateParcel)
	router.PATCH("/parcels/assign", w.AssignRider, authenticate)
	router.PATCH("/parcels/cashout/:id", w.CashoutParcel, authenticate)
	router.GET("/parcels/:id", w.GetParcel, authenticate)
	router.DELETE("/parcels/:id", w.DeleteParcel, authenticate)
	router.PATCH("/parcels/:id/delivery-status", w.UpdateDeliveryStatus, authenticate)

	router.GET("/riders", w.MatchRiders, authenticate)
	router.POST("/riders", w.RegisterRider)
	router.GET("/riders/pending", w.ListPendingRiders, authenticate)
	router.GET("/riders/approved", w.ListApprovedRiders, authenticate)
	router.PATCH("/riders/status/:id", w.SetRiderApproval, authenticate)

	router.GET("/payments", w.ListPayments, authenticate)
	router.POST("/payments", w.RecordPayment)
	router.POST("/create-payment-intent", w.CreatePaymentIntent)

	router.POST("/trackings", w.AppendTrackingEvent, authenticate)
	router.GET("/trackings/:trackingId", w.ListTrackingEvents)
}
