package queries

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderView is the read model of a rider.
type RiderView struct {
	ID             kernel.UUID
	Profile        rider.Profile
	ApprovalStatus rider.ApprovalStatus
	Availability   rider.Availability
	CreatedAt      time.Time
}

const riderColumns = `id, name, email, phone, region, district, vehicle, approval_status, availability, created_at`

type riderRow struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	Region         string
	District       string
	Vehicle        string
	ApprovalStatus string
	Availability   string
	CreatedAt      time.Time
}

// toDomain rebuilds the aggregate so that rows can be ranked by
// services.RiderDispatcher.
func (r riderRow) toDomain() (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}
	approval, err := rider.ParseApprovalStatus(r.ApprovalStatus)
	if err != nil {
		return nil, err
	}
	return rider.RestoreRider(id, rider.Profile{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Region:   r.Region,
		District: r.District,
		Vehicle:  r.Vehicle,
	}, approval, rider.Availability(r.Availability), r.CreatedAt)
}

func riderView(r *rider.Rider) RiderView {
	return RiderView{
		ID:             r.ID(),
		Profile:        r.Profile(),
		ApprovalStatus: r.ApprovalStatus(),
		Availability:   r.Availability(),
		CreatedAt:      r.CreatedAt(),
	}
}

func loadRiders(rows []riderRow) ([]*rider.Rider, error) {
	riders := make([]*rider.Rider, 0, len(rows))
	for _, row := range rows {
		r, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		riders = append(riders, r)
	}
	return riders, nil
}
