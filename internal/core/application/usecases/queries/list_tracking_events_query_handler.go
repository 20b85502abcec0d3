package queries

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListTrackingEventsQueryHandler returns a history ordered by time ascending.
type ListTrackingEventsQueryHandler struct {
	db *gorm.DB
}

func NewListTrackingEventsQueryHandler(db *gorm.DB) ListTrackingEventsQueryHandler {
	return ListTrackingEventsQueryHandler{db: db}
}

type trackingEventRow struct {
	ID         uuid.UUID
	TrackingID string
	ParcelID   *uuid.UUID
	Status     string
	Details    string
	UpdatedBy  string
	At         time.Time
}

func (h ListTrackingEventsQueryHandler) Handle(
	ctx context.Context, query ListTrackingEventsQuery,
) ([]TrackingEventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, tracking_id, parcel_id, status, details, updated_by, at
		FROM tracking_events
		WHERE tracking_id = ?`
	args := []any{query.TrackingID()}
	if parcelID, err := kernel.UUIDFromString(query.TrackingID()); err == nil {
		sql += ` OR parcel_id = ?`
		args = append(args, parcelID.Bytes())
	}
	sql += `
		ORDER BY at, id`

	var rows []trackingEventRow
	if err := h.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]TrackingEventView, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		view := TrackingEventView{
			ID:         id,
			TrackingID: row.TrackingID,
			Status:     row.Status,
			Details:    row.Details,
			UpdatedBy:  row.UpdatedBy,
			At:         row.At,
		}
		if row.ParcelID != nil {
			parcelID, pErr := kernel.UUIDFromBytes((*row.ParcelID)[:])
			if pErr != nil {
				return nil, pErr
			}
			view.ParcelID = &parcelID
		}
		events = append(events, view)
	}

	return events, nil
}
