package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListRidersByStatusQueryHandler lists riders with one approval status in
// registration order.
type ListRidersByStatusQueryHandler struct {
	db *gorm.DB
}

func NewListRidersByStatusQueryHandler(db *gorm.DB) ListRidersByStatusQueryHandler {
	return ListRidersByStatusQueryHandler{db: db}
}

func (h ListRidersByStatusQueryHandler) Handle(ctx context.Context, query ListRidersByStatusQuery) ([]RiderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []riderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT `+riderColumns+`
		FROM riders
		WHERE approval_status = ?
		ORDER BY created_at, id
	`, query.Status().String()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	loaded, err := loadRiders(rows)
	if err != nil {
		return nil, err
	}

	riders := make([]RiderView, 0, len(loaded))
	for _, r := range loaded {
		riders = append(riders, riderView(r))
	}
	return riders, nil
}
