package services

import (
	"errors"
	"sort"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/errs"
)

// ErrRiderNotFound is returned when no approved rider serves either district
// of a parcel.
var ErrRiderNotFound = errors.New("rider not found")

// RiderDispatcher is a domain service binding riders to parcels.
//
// Key responsibilities:
//   - checking every precondition of an assignment before mutating anything,
//     so that parcel and rider either both change or neither does
//   - ranking candidate riders for a parcel by district
//   - deciding when a rider can go back to idle
//
// Example usage:
//
//	dispatcher := services.NewRiderDispatcher()
//	if err := dispatcher.Assign(p, r); err != nil {
//	    return err // parcel and rider untouched
//	}
//	// persist p and r in the same transaction
type RiderDispatcher struct{}

// NewRiderDispatcher creates a new RiderDispatcher instance.
func NewRiderDispatcher() RiderDispatcher {
	return RiderDispatcher{}
}

// Assign binds r to p.
//
// Parameters:
//   - p: parcel in created status
//   - r: approved rider
//
// Returns:
//   - errs.ErrTransitionIsInvalid if p is past created
//   - errs.ErrConflict if r is not approved
//   - nil once p is riders-assigned and r is in-delivery
func (d RiderDispatcher) Assign(p *parcel.Parcel, r *rider.Rider) error {
	if err := errors.Join(p.Validate(), r.Validate()); err != nil {
		return err
	}
	if err := p.DeliveryStatus().CanTransitionTo(parcel.RidersAssigned); err != nil {
		return err
	}
	if !r.IsAssignable() {
		return errs.NewConflictError("rider", r.ID().String(), "rider is "+r.ApprovalStatus().String()+", not approved")
	}

	if err := p.AssignRider(parcel.RiderAssignment{
		RiderID: r.ID(),
		Name:    r.Name(),
		Email:   r.Email(),
		Phone:   r.Phone(),
	}); err != nil {
		return err
	}

	// Cannot fail: approval was checked above.
	return r.StartDelivery()
}

// ShouldRelease reports whether the rider of p can go idle after p changed
// status. otherActive is the number of the rider's active parcels other
// than p.
func (d RiderDispatcher) ShouldRelease(p *parcel.Parcel, otherActive int64) bool {
	return p.DeliveryStatus().IsTerminal() && otherActive == 0
}

// Rank orders candidates for a parcel with the given sender and receiver
// districts.
//
// Selection criteria:
//   - only approved riders serving one of the two districts are kept
//   - riders in the sender district come first (pickup is the first leg)
//   - idle riders come before riders already carrying parcels
//   - ties keep registration order
//
// Returns ErrRiderNotFound when no candidate is left.
func (d RiderDispatcher) Rank(senderDistrict, receiverDistrict string, riders []*rider.Rider) ([]*rider.Rider, error) {
	candidates := make([]*rider.Rider, 0, len(riders))
	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.IsAssignable() && r.MatchesDistrict(senderDistrict, receiverDistrict) {
			candidates = append(candidates, r)
		}
	}

	if len(candidates) == 0 {
		return nil, ErrRiderNotFound
	}

	score := func(r *rider.Rider) int {
		s := 0
		if !r.MatchesDistrict(senderDistrict) {
			s += 2
		}
		if r.Availability() != rider.Idle {
			s++
		}
		return s
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return score(candidates[i]) < score(candidates[j])
	})

	return candidates, nil
}
