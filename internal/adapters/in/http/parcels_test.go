package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parcelView(id kernel.UUID, rider *parcel.RiderAssignment) queries.ParcelView {
	status := parcel.Created
	if rider != nil {
		status = parcel.RidersAssigned
	}
	return queries.ParcelView{
		ID:        id,
		CreatedBy: senderEmail,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Details: parcel.Details{
			Title:    "Documents",
			Cost:     150,
			Sender:   parcel.Party{District: "Dhaka"},
			Receiver: parcel.Party{District: "Khulna"},
		},
		DeliveryStatus: status,
		PaymentStatus:  parcel.Unpaid,
		Rider:          rider,
	}
}

func TestServer_CreateParcel(t *testing.T) {
	id := kernel.NewUUID()
	var got commands.CreateParcelCommand
	f := newFixture(t, UseCases{
		CreateParcel: handlerFunc[commands.CreateParcelCommand, kernel.UUID](
			func(_ context.Context, cmd commands.CreateParcelCommand) (kernel.UUID, error) {
				got = cmd
				return id, nil
			}),
	}, nil)

	rec := f.do(t, http.MethodPost, "/parcels", "", NewParcel{
		CreatedBy: "Sender@X.com",
		Title:     "Documents",
		Cost:      150,
		Sender:    Party{District: "Dhaka"},
		Receiver:  Party{District: "Khulna"},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, id.String(), decode[Id](t, rec).Id.String())
	assert.Equal(t, senderEmail, got.CreatedBy())
	assert.Equal(t, "Khulna", got.Details().Receiver.District)
}

func TestServer_GetParcel(t *testing.T) {
	id := kernel.NewUUID()
	assignment := &parcel.RiderAssignment{RiderID: kernel.NewUUID(), Name: "Karim", Email: riderEmail}
	f := newFixture(t, UseCases{
		GetParcel: handlerFunc[queries.GetParcelQuery, queries.ParcelView](
			func(_ context.Context, q queries.GetParcelQuery) (queries.ParcelView, error) {
				if !q.ParcelID().IsEqual(id) {
					return queries.ParcelView{}, errs.NewObjectNotFoundError("parcelID", q.ParcelID())
				}
				return parcelView(id, assignment), nil
			}),
	}, nil)

	for _, token := range []string{adminToken, senderToken, riderToken} {
		rec := f.do(t, http.MethodGet, "/parcels/"+id.String(), token, nil)

		require.Equal(t, http.StatusOK, rec.Code, token)
		body := decode[Parcel](t, rec)
		assert.Equal(t, "riders-assigned", body.DeliveryStatus)
		require.NotNil(t, body.AssignedRider)
		assert.Equal(t, riderEmail, body.AssignedRider.Email)
	}

	rec := f.do(t, http.MethodGet, "/parcels/"+id.String(), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/parcels/"+kernel.NewUUID().String(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListParcels_Scope(t *testing.T) {
	var got queries.ListParcelsQuery
	f := newFixture(t, UseCases{
		ListParcels: handlerFunc[queries.ListParcelsQuery, []queries.ParcelView](
			func(_ context.Context, q queries.ListParcelsQuery) ([]queries.ParcelView, error) {
				got = q
				return []queries.ParcelView{parcelView(kernel.NewUUID(), nil)}, nil
			}),
	}, nil)

	t.Run("sender without filter sees own parcels", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/parcels", senderToken, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, senderEmail, got.CreatedBy())
		assert.Len(t, decode[[]Parcel](t, rec), 1)
	})

	t.Run("rider lists own deliveries", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/parcels?rider_email="+riderEmail+"&delivery_status=in-transit", riderToken, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, riderEmail, got.RiderEmail())
		assert.Equal(t, parcel.InTransit, got.DeliveryStatus())
		assert.Empty(t, got.CreatedBy())
	})

	t.Run("someone else's parcels are forbidden", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/parcels?email="+senderEmail, strangerToken, nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin lists everything", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/parcels?payment_status=paid", adminToken, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, got.CreatedBy())
		assert.Equal(t, parcel.Paid, got.PaymentStatus())
	})

	t.Run("unknown status is a bad request", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/parcels?delivery_status=lost", adminToken, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_AssignRider(t *testing.T) {
	parcelID, riderID := kernel.NewUUID(), kernel.NewUUID()

	t.Run("admin assigns", func(t *testing.T) {
		var got commands.AssignRiderCommand
		f := newFixture(t, UseCases{
			AssignRider: executorFunc[commands.AssignRiderCommand](func(_ context.Context, cmd commands.AssignRiderCommand) error {
				got = cmd
				return nil
			}),
		}, nil)

		rec := f.do(t, http.MethodPatch, "/parcels/assign", adminToken, AssignRider{
			ParcelId: parcelID.String(),
			RiderId:  riderID.String(),
		})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "riders-assigned", decode[AssignRiderResult](t, rec).DeliveryStatus)
		assert.True(t, got.RiderID().IsEqual(riderID))
		assert.Equal(t, adminEmail, got.AssignedBy())
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.Assignments), 0)
	})

	t.Run("only admins assign", func(t *testing.T) {
		f := newFixture(t, UseCases{
			AssignRider: executorFunc[commands.AssignRiderCommand](func(context.Context, commands.AssignRiderCommand) error {
				t.Errorf("handler must not be called")
				return nil
			}),
		}, nil)

		rec := f.do(t, http.MethodPatch, "/parcels/assign", riderToken, AssignRider{
			ParcelId: parcelID.String(),
			RiderId:  riderID.String(),
		})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed rider id", func(t *testing.T) {
		f := newFixture(t, UseCases{}, nil)

		rec := f.do(t, http.MethodPatch, "/parcels/assign", adminToken, AssignRider{ParcelId: parcelID.String(), RiderId: "r-1"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("lost race is a conflict", func(t *testing.T) {
		f := newFixture(t, UseCases{
			AssignRider: executorFunc[commands.AssignRiderCommand](func(context.Context, commands.AssignRiderCommand) error {
				return errs.NewConflictError("rider", riderID, "availability changed")
			}),
		}, nil)

		rec := f.do(t, http.MethodPatch, "/parcels/assign", adminToken, AssignRider{
			ParcelId: parcelID.String(),
			RiderId:  riderID.String(),
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.Conflicts.WithLabelValues("assign")), 0)
	})
}

func TestServer_UpdateDeliveryStatus(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("caller becomes the command actor", func(t *testing.T) {
		var got commands.UpdateDeliveryStatusCommand
		f := newFixture(t, UseCases{
			UpdateDeliveryStatus: handlerFunc[commands.UpdateDeliveryStatusCommand, commands.UpdateDeliveryStatusResult](
				func(_ context.Context, cmd commands.UpdateDeliveryStatusCommand) (commands.UpdateDeliveryStatusResult, error) {
					got = cmd
					return commands.UpdateDeliveryStatusResult{Status: parcel.Delivered, RiderReleased: true}, nil
				}),
		}, nil)

		rec := f.do(t, http.MethodPatch, "/parcels/"+id.String()+"/delivery-status", riderToken, DeliveryStatusUpdate{Status: "delivered"})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[DeliveryStatusResult](t, rec)
		assert.Equal(t, "delivered", body.DeliveryStatus)
		assert.True(t, body.RiderReleased)
		assert.Equal(t, riderEmail, got.Actor().Email)
		assert.Equal(t, parcel.Delivered, got.Status())
		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.StatusTransitions.WithLabelValues("delivered")), 0)
	})

	t.Run("regression is a conflict", func(t *testing.T) {
		f := newFixture(t, UseCases{
			UpdateDeliveryStatus: handlerFunc[commands.UpdateDeliveryStatusCommand, commands.UpdateDeliveryStatusResult](
				func(context.Context, commands.UpdateDeliveryStatusCommand) (commands.UpdateDeliveryStatusResult, error) {
					return commands.UpdateDeliveryStatusResult{}, errs.NewTransitionIsInvalidError("parcel", "delivered", "in-transit")
				}),
		}, nil)

		rec := f.do(t, http.MethodPatch, "/parcels/"+id.String()+"/delivery-status", adminToken, DeliveryStatusUpdate{Status: "in-transit"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("not the assigned rider", func(t *testing.T) {
		f := newFixture(t, UseCases{
			UpdateDeliveryStatus: handlerFunc[commands.UpdateDeliveryStatusCommand, commands.UpdateDeliveryStatusResult](
				func(_ context.Context, cmd commands.UpdateDeliveryStatusCommand) (commands.UpdateDeliveryStatusResult, error) {
					return commands.UpdateDeliveryStatusResult{}, errs.NewForbiddenError("only an admin or the assigned rider may change this parcel")
				}),
		}, nil)

		rec := f.do(t, http.MethodPatch, "/parcels/"+id.String()+"/delivery-status", strangerToken, DeliveryStatusUpdate{Status: "in-transit"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t, UseCases{}, nil)

		rec := f.do(t, http.MethodPatch, "/parcels/"+id.String()+"/delivery-status", adminToken, DeliveryStatusUpdate{Status: "lost"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_CashoutParcel(t *testing.T) {
	id := kernel.NewUUID()
	at := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	calls := 0
	f := newFixture(t, UseCases{
		CashoutParcel: handlerFunc[commands.CashoutParcelCommand, time.Time](
			func(_ context.Context, cmd commands.CashoutParcelCommand) (time.Time, error) {
				calls++
				if calls > 1 {
					return time.Time{}, errs.NewConflictError("parcel", cmd.ParcelID(), "already cashed out")
				}
				return at, nil
			}),
	}, nil)

	rec := f.do(t, http.MethodPatch, "/parcels/cashout/"+id.String(), riderToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[CashoutResult](t, rec)
	assert.True(t, body.Cashout)
	assert.True(t, at.Equal(body.CashoutAt))

	rec = f.do(t, http.MethodPatch, "/parcels/cashout/"+id.String(), riderToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.Cashouts), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.Conflicts.WithLabelValues("cashout")), 0)
}

func TestServer_DeleteParcel(t *testing.T) {
	id := kernel.NewUUID()
	f := newFixture(t, UseCases{
		DeleteParcel: handlerFunc[commands.DeleteParcelCommand, bool](
			func(_ context.Context, cmd commands.DeleteParcelCommand) (bool, error) {
				return cmd.ParcelID().IsEqual(id), nil
			}),
	}, nil)

	rec := f.do(t, http.MethodDelete, "/parcels/"+id.String(), senderToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[DeleteResult](t, rec).DeletedCount)

	rec = f.do(t, http.MethodDelete, "/parcels/"+kernel.NewUUID().String(), senderToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[DeleteResult](t, rec).DeletedCount)
}
