package access

import (
	"context"
	"errors"
	"slices"
	"strings"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

// TokenVerifier checks a bearer token with the identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// RoleLookup reads the role currently stored for an email.
// Unknown emails report errs.ErrObjectNotFound.
type RoleLookup interface {
	LookupRole(ctx context.Context, email string) (user.Role, error)
}

// Gate authenticates callers and checks their capabilities.
//
// Example:
//
//	gate := access.NewGate(verifier, roles)
//	id, err := gate.Authenticate(ctx, token)
//	if err != nil {
//	    return err // errs.ErrUnauthorized or errs.ErrForbidden
//	}
//	actor, err := gate.Authorize(ctx, id, user.RoleAdmin)
type Gate struct {
	verifier TokenVerifier
	roles    RoleLookup
}

// NewGate creates a Gate.
func NewGate(verifier TokenVerifier, roles RoleLookup) *Gate {
	return &Gate{verifier: verifier, roles: roles}
}

// Authenticate verifies token.
//
// Returns:
//   - errs.ErrUnauthorized when token is empty
//   - errs.ErrForbidden when the provider rejects it or it carries no email
func (g *Gate) Authenticate(ctx context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, errs.NewUnauthorizedError("missing bearer token")
	}

	id, err := g.verifier.Verify(ctx, token)
	if err != nil {
		return Identity{}, errs.NewForbiddenError("invalid or expired token")
	}

	email, err := user.NormalizeEmail(id.Email)
	if err != nil {
		return Identity{}, errs.NewForbiddenError("token carries no usable email")
	}
	id.Email = email

	return id, nil
}

// Resolve looks up the caller's current role. A caller never seen before
// resolves to user.RoleNone.
func (g *Gate) Resolve(ctx context.Context, id Identity) (Actor, error) {
	role, err := g.roles.LookupRole(ctx, id.Email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		role = user.RoleNone
	} else if err != nil {
		return Actor{}, err
	}

	return Actor{Email: id.Email, Role: role}, nil
}

// Authorize requires the caller to hold one of roles.
func (g *Gate) Authorize(ctx context.Context, id Identity, roles ...user.Role) (Actor, error) {
	actor, err := g.Resolve(ctx, id)
	if err != nil {
		return Actor{}, err
	}

	if !slices.Contains(roles, actor.Role) {
		return Actor{}, errs.NewForbiddenError("role " + actor.Role.String() + " is not allowed")
	}

	return actor, nil
}

// AuthorizeSelf requires the caller to be the owner of email.
func (g *Gate) AuthorizeSelf(id Identity, email string) error {
	normalized, err := user.NormalizeEmail(email)
	if err != nil || normalized != id.Email {
		return errs.NewForbiddenError("caller does not own this resource")
	}
	return nil
}

// AuthorizeSelfOrAdmin requires the caller to own email or be an admin.
func (g *Gate) AuthorizeSelfOrAdmin(ctx context.Context, id Identity, email string) (Actor, error) {
	actor, err := g.Resolve(ctx, id)
	if err != nil {
		return Actor{}, err
	}

	if actor.IsAdmin() {
		return actor, nil
	}
	if err := g.AuthorizeSelf(id, email); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// AuthorizeParcelActor requires the caller to be an admin or the rider
// assigned to p.
func (g *Gate) AuthorizeParcelActor(ctx context.Context, id Identity, p *parcel.Parcel) (Actor, error) {
	actor, err := g.Resolve(ctx, id)
	if err != nil {
		return Actor{}, err
	}

	if err := actor.CanOperateParcel(p); err != nil {
		return Actor{}, err
	}

	return actor, nil
}
