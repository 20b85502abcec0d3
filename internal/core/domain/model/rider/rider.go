package rider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// ErrRiderIsNotConstructed is returned when a Rider was not created through
// NewRider or RestoreRider.
var ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructor")

// Profile is the data a rider submits when applying.
type Profile struct {
	Name     string
	Email    string
	Phone    string
	Region   string
	District string
	Vehicle  string
}

// Rider is a delivery rider application and, once approved, a rider who can
// be assigned parcels.
//
// Rider keeps two independent state fields:
//   - approvalStatus: pending → approved | rejected (admin decision)
//   - availability: idle ↔ in-delivery (driven by parcel assignment)
type Rider struct {
	id             kernel.UUID
	profile        Profile
	approvalStatus ApprovalStatus
	availability   Availability
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewRider registers a rider application in pending / idle state.
//
// Parameters:
//   - id: identifier of the new rider
//   - profile: name, email and district are required; email is normalized
//   - now: registration time
//
// Example:
//
//	r, err := rider.NewRider(kernel.NewUUID(), rider.Profile{
//	    Name: "Karim", Email: "karim@x.com", Phone: "017", District: "Dhaka",
//	}, clock.Now())
func NewRider(id kernel.UUID, profile Profile, now time.Time) (*Rider, error) {
	r := &Rider{
		approvalStatus: Pending,
		availability:   Idle,
		createdAt:      now,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setProfile(profile),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider rebuilds a rider loaded from storage.
func RestoreRider(
	id kernel.UUID,
	profile Profile,
	approvalStatus ApprovalStatus,
	availability Availability,
	createdAt time.Time,
) (*Rider, error) {
	r := &Rider{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setProfile(profile),
		approvalStatus.Validate(),
		availability.Validate(),
	); err != nil {
		return nil, err
	}
	r.approvalStatus = approvalStatus
	r.availability = availability

	return r, nil
}

// Validate ensures the rider was built by a constructor.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) ID() kernel.UUID                { return r.id }
func (r *Rider) Profile() Profile               { return r.profile }
func (r *Rider) Name() string                   { return r.profile.Name }
func (r *Rider) Email() string                  { return r.profile.Email }
func (r *Rider) Phone() string                  { return r.profile.Phone }
func (r *Rider) District() string               { return r.profile.District }
func (r *Rider) ApprovalStatus() ApprovalStatus { return r.approvalStatus }
func (r *Rider) Availability() Availability     { return r.availability }
func (r *Rider) CreatedAt() time.Time           { return r.createdAt }

// IsEqual compares riders by identifier.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// IsAssignable reports whether the rider may receive new parcels.
func (r *Rider) IsAssignable() bool {
	return r.approvalStatus == Approved
}

// SetApproval records the admin decision.
//
// Any decision may be revised except back to pending; a rejected rider can
// be approved later and an approved rider can be rejected (deactivated).
// Rejecting does not touch availability: parcels already assigned stay with
// the rider until they reach a terminal state.
func (r *Rider) SetApproval(status ApprovalStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Pending && r.approvalStatus != Pending {
		return errs.NewTransitionIsInvalidError("rider", r.approvalStatus.String(), status.String())
	}
	r.approvalStatus = status
	return nil
}

// StartDelivery marks the rider busy because a parcel was assigned.
// A rider may carry several parcels, so calling it on a busy rider is a no-op.
//
// Returns errs.ErrConflict if the rider is not approved.
func (r *Rider) StartDelivery() error {
	if !r.IsAssignable() {
		return errs.NewConflictError("rider", r.id.String(), fmt.Sprintf("rider is %s, not approved", r.approvalStatus))
	}
	r.availability = InDelivery
	return nil
}

// Release marks the rider idle. Callers must check that no active parcel
// still references the rider.
func (r *Rider) Release() {
	r.availability = Idle
}

// MatchesDistrict reports whether the rider operates in one of the districts.
func (r *Rider) MatchesDistrict(districts ...string) bool {
	for _, d := range districts {
		if d != "" && strings.EqualFold(strings.TrimSpace(d), r.profile.District) {
			return true
		}
	}
	return false
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.District = strings.TrimSpace(p.District)

	var err error
	if p.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if p.District == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("district"))
	}
	email, emailErr := user.NormalizeEmail(p.Email)
	if emailErr != nil {
		err = errors.Join(err, emailErr)
	}
	if err != nil {
		return err
	}

	p.Email = email
	r.profile = p
	return nil
}
