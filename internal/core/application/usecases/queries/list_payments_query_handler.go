package queries

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListPaymentsQueryHandler lists payments by payment time descending.
type ListPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewListPaymentsQueryHandler(db *gorm.DB) ListPaymentsQueryHandler {
	return ListPaymentsQueryHandler{db: db}
}

func (h ListPaymentsQueryHandler) Handle(ctx context.Context, query ListPaymentsQuery) ([]PaymentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, parcel_id, amount, created_by, method, transaction_id, paid_at
		FROM payments`
	var args []any
	if query.CreatedBy() != "" {
		sql += `
		WHERE created_by = ?`
		args = append(args, query.CreatedBy())
	}
	sql += `
		ORDER BY paid_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]PaymentView, 0)
	for rows.Next() {
		var (
			id, parcelID uuid.UUID
			view         PaymentView
			paidAt       time.Time
		)
		err = rows.Scan(&id, &parcelID, &view.Amount, &view.CreatedBy, &view.Method, &view.TransactionID, &paidAt)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.ParcelID, err = kernel.UUIDFromBytes(parcelID[:]); err != nil {
			return nil, err
		}
		view.PaidAt = paidAt

		payments = append(payments, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
