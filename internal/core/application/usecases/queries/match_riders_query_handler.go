package queries

import (
	"context"
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/services"

	"gorm.io/gorm"
)

// MatchRidersQueryHandler loads approved riders of either district and
// ranks them with services.RiderDispatcher: sender district first, idle
// before busy. No match is an empty result, not an error.
type MatchRidersQueryHandler struct {
	db         *gorm.DB
	dispatcher services.RiderDispatcher
}

func NewMatchRidersQueryHandler(db *gorm.DB) MatchRidersQueryHandler {
	return MatchRidersQueryHandler{db: db, dispatcher: services.NewRiderDispatcher()}
}

func (h MatchRidersQueryHandler) Handle(ctx context.Context, query MatchRidersQuery) ([]RiderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []riderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT `+riderColumns+`
		FROM riders
		WHERE approval_status = ?
		  AND lower(district) IN (?, ?)
		ORDER BY created_at, id
	`, rider.Approved.String(),
		strings.ToLower(query.SenderDistrict()),
		strings.ToLower(query.ReceiverDistrict()),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates, err := loadRiders(rows)
	if err != nil {
		return nil, err
	}

	ranked, err := h.dispatcher.Rank(query.SenderDistrict(), query.ReceiverDistrict(), candidates)
	if errors.Is(err, services.ErrRiderNotFound) {
		return []RiderView{}, nil
	}
	if err != nil {
		return nil, err
	}

	riders := make([]RiderView, 0, len(ranked))
	for _, r := range ranked {
		riders = append(riders, riderView(r))
	}
	return riders, nil
}
