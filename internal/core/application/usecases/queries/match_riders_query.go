package queries

import (
	"errors"
	"strings"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrMatchRidersQueryIsNotConstructed = errors.New(
	"MatchRidersQuery must be created via NewMatchRidersQuery constructor",
)

// MatchRidersQuery finds approved riders for a parcel travelling between two
// districts.
type MatchRidersQuery struct {
	senderDistrict   string
	receiverDistrict string

	guard guard.ConstructorGuard
}

// NewMatchRidersQuery requires at least one district.
func NewMatchRidersQuery(senderDistrict, receiverDistrict string) (MatchRidersQuery, error) {
	senderDistrict = strings.TrimSpace(senderDistrict)
	receiverDistrict = strings.TrimSpace(receiverDistrict)
	if senderDistrict == "" && receiverDistrict == "" {
		return MatchRidersQuery{}, errs.NewValueIsRequiredError("district")
	}
	return MatchRidersQuery{
		senderDistrict:   senderDistrict,
		receiverDistrict: receiverDistrict,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (q MatchRidersQuery) SenderDistrict() string   { return q.senderDistrict }
func (q MatchRidersQuery) ReceiverDistrict() string { return q.receiverDistrict }

func (q MatchRidersQuery) Validate() error {
	return q.guard.Validate(ErrMatchRidersQueryIsNotConstructed)
}
