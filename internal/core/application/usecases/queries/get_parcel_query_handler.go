package queries

import (
	"context"

	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown id.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	var rows []parcelRow
	err := h.db.WithContext(ctx).
		Raw("SELECT "+parcelColumns+" FROM parcels WHERE id = ?", query.ParcelID().Bytes()).
		Scan(&rows).Error
	if err != nil {
		return ParcelView{}, err
	}

	if len(rows) == 0 {
		return ParcelView{}, errs.NewObjectNotFoundError("parcel", query.ParcelID())
	}

	return rows[0].toView()
}
