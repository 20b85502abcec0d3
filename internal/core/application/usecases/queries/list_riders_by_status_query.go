package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/pkg/guard"
)

var ErrListRidersByStatusQueryIsNotConstructed = errors.New(
	"ListRidersByStatusQuery must be created via NewListRidersByStatusQuery constructor",
)

// ListRidersByStatusQuery backs the admin's pending and approved rider views.
type ListRidersByStatusQuery struct {
	status rider.ApprovalStatus

	guard guard.ConstructorGuard
}

func NewListRidersByStatusQuery(status string) (ListRidersByStatusQuery, error) {
	parsed, err := rider.ParseApprovalStatus(status)
	if err != nil {
		return ListRidersByStatusQuery{}, err
	}
	return ListRidersByStatusQuery{status: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRidersByStatusQuery) Status() rider.ApprovalStatus { return q.status }

func (q ListRidersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListRidersByStatusQueryIsNotConstructed)
}
