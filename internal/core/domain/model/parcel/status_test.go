package parcel_test

import (
	"testing"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeliveryStatus(t *testing.T) {
	t.Run("accepts every label", func(t *testing.T) {
		for _, label := range []string{"created", "riders-assigned", "in-transit", "delivered", "delivered_service_center"} {
			st, err := parcel.ParseDeliveryStatus(label)
			require.NoError(t, err)
			assert.Equal(t, label, st.String())
		}
	})

	t.Run("empty label is required", func(t *testing.T) {
		_, err := parcel.ParseDeliveryStatus("")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown label is invalid", func(t *testing.T) {
		_, err := parcel.ParseDeliveryStatus("lost")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliveryStatus_CanTransitionTo(t *testing.T) {
	all := []parcel.DeliveryStatus{
		parcel.Created, parcel.RidersAssigned, parcel.InTransit,
		parcel.Delivered, parcel.DeliveredServiceCenter,
	}
	allowed := map[[2]parcel.DeliveryStatus]bool{
		{parcel.Created, parcel.RidersAssigned}:          true,
		{parcel.RidersAssigned, parcel.InTransit}:        true,
		{parcel.InTransit, parcel.Delivered}:             true,
		{parcel.InTransit, parcel.DeliveredServiceCenter}: true,
	}

	for _, from := range all {
		for _, to := range all {
			err := from.CanTransitionTo(to)
			if allowed[[2]parcel.DeliveryStatus{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
				assert.Greater(t, to.Rank(), from.Rank())
				continue
			}
			assert.ErrorIs(t, err, errs.ErrTransitionIsInvalid, "%s -> %s", from, to)
		}
	}
}

func TestDeliveryStatus_Predicates(t *testing.T) {
	assert.True(t, parcel.Delivered.IsTerminal())
	assert.True(t, parcel.DeliveredServiceCenter.IsTerminal())
	assert.False(t, parcel.InTransit.IsTerminal())

	assert.True(t, parcel.RidersAssigned.IsActive())
	assert.True(t, parcel.InTransit.IsActive())
	assert.False(t, parcel.Created.IsActive())
	assert.False(t, parcel.Delivered.IsActive())

	assert.Equal(t, -1, parcel.DeliveryStatus("lost").Rank())
}

func TestParsePaymentStatus(t *testing.T) {
	st, err := parcel.ParsePaymentStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, parcel.Paid, st)

	_, err = parcel.ParsePaymentStatus("refunded")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
