package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// ListParcelsQueryHandler lists parcels by the filters of ListParcelsQuery,
// ordered by creation time descending.
type ListParcelsQueryHandler struct {
	db *gorm.DB
}

func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.CreatedBy() != "" {
		where = append(where, "created_by = ?")
		args = append(args, query.CreatedBy())
	}
	if query.PaymentStatus() != "" {
		where = append(where, "payment_status = ?")
		args = append(args, query.PaymentStatus().String())
	}
	if query.DeliveryStatus() != "" {
		where = append(where, "delivery_status = ?")
		args = append(args, query.DeliveryStatus().String())
	}
	if query.RiderEmail() != "" {
		where = append(where, "rider_email = ?")
		args = append(args, query.RiderEmail())
	}

	sql := "SELECT " + parcelColumns + " FROM parcels"
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY created_at DESC, id"

	var rows []parcelRow
	if err := h.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	parcels := make([]ParcelView, 0, len(rows))
	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, view)
	}

	return parcels, nil
}
