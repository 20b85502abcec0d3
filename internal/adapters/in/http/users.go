package http

import (
	"net/http"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// UpsertUser handles POST /users.
func (s *Server) UpsertUser(ctx echo.Context) error {
	var body UpsertUser
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewUpsertUserCommand(body.Email)
	if err != nil {
		return err
	}
	result, err := s.useCases.UpsertUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := UpsertUserResult{
		Id:      result.UserID.Bytes(),
		Email:   cmd.Email(),
		Role:    result.Role.String(),
		Created: result.Created,
		Message: "User created",
	}
	if !result.Created {
		response.Message = "User already exists"
		return ctx.JSON(http.StatusOK, response)
	}
	return ctx.JSON(http.StatusCreated, response)
}

// SearchUsers handles GET /users/search. Admin only.
func (s *Server) SearchUsers(ctx echo.Context, params SearchUsersParams) error {
	reqCtx := ctx.Request().Context()
	if _, err := s.gate.Authorize(reqCtx, identityOf(ctx), user.RoleAdmin); err != nil {
		return err
	}

	query, err := queries.NewSearchUsersQuery(params.Email)
	if err != nil {
		return err
	}
	views, err := s.useCases.SearchUsers.Handle(reqCtx, query)
	if err != nil {
		return err
	}

	response := make([]User, len(views))
	for i, v := range views {
		response[i] = User{Id: v.ID.Bytes(), Email: v.Email, Role: v.Role.String(), LastLogIn: v.LastLogin}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetUserRole handles GET /users/role/{email}.
func (s *Server) GetUserRole(ctx echo.Context, email string) error {
	query, err := queries.NewGetUserRoleQuery(email)
	if err != nil {
		return err
	}
	role, err := s.useCases.GetUserRole.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, UserRole{Email: query.Email(), Role: role.String()})
}

// SetUserRole handles PATCH /users/role/{id}. Admin only.
func (s *Server) SetUserRole(ctx echo.Context, id openapi_types.UUID) error {
	reqCtx := ctx.Request().Context()
	if _, err := s.gate.Authorize(reqCtx, identityOf(ctx), user.RoleAdmin); err != nil {
		return err
	}

	var body SetUserRole
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	userID, err := toKernelUUID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetUserRoleCommand(userID, body.Role)
	if err != nil {
		return err
	}
	if err = s.useCases.SetUserRole.Handle(reqCtx, cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, UserRoleUpdated{Id: id, Role: cmd.Role().String()})
}
