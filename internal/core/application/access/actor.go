// Package access is the Access Gate of the service: it turns a bearer token
// into an Identity and an Identity into an Actor whose role was looked up
// for this very request.
//
// Roles are never cached. A role change made by an admin or by a rider
// approval is visible on the caller's next request.
package access

import (
	"strings"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

// Identity is what the identity provider vouches for.
type Identity struct {
	UID   string
	Email string
}

// Actor is an authenticated caller together with the role stored for it.
type Actor struct {
	Email string
	Role  user.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// Is reports whether the actor's email equals email, ignoring case.
func (a Actor) Is(email string) bool {
	return a.Email != "" && strings.EqualFold(a.Email, strings.TrimSpace(email))
}

// CanOperateParcel allows delivery progress and cashout: admins and the
// rider assigned to p.
func (a Actor) CanOperateParcel(p *parcel.Parcel) error {
	if a.IsAdmin() || p.IsAssignedTo(a.Email) {
		return nil
	}
	return errs.NewForbiddenError("only an admin or the assigned rider may change this parcel")
}

// CanManageParcel allows deletion: admins always, the parcel's creator only
// while no rider is working on it.
func (a Actor) CanManageParcel(p *parcel.Parcel) error {
	if a.IsAdmin() {
		return nil
	}
	if !a.Is(p.CreatedBy()) {
		return errs.NewForbiddenError("only an admin or the sender may manage this parcel")
	}
	if p.IsActive() {
		return errs.NewForbiddenError("a parcel out for delivery can only be removed by an admin")
	}
	return nil
}

// CanViewParcel allows reading: admins, the creator and the assigned rider.
func (a Actor) CanViewParcel(p *parcel.Parcel) error {
	riderEmail := ""
	if r := p.AssignedRider(); r != nil {
		riderEmail = r.Email
	}
	return a.CanView(p.CreatedBy(), riderEmail)
}

// CanView is CanViewParcel for read models that only carry the creator and
// the assigned rider's email. riderEmail is empty when no rider is assigned.
func (a Actor) CanView(createdBy, riderEmail string) error {
	if a.IsAdmin() || a.Is(createdBy) || a.Is(riderEmail) {
		return nil
	}
	return errs.NewForbiddenError("parcel belongs to someone else")
}
