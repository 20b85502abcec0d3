package access_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/application/access"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_ParcelCapabilities(t *testing.T) {
	p, err := parcel.NewParcel(kernel.NewUUID(), "sender@x.com", parcel.Details{}, time.Now())
	require.NoError(t, err)
	require.NoError(t, p.AssignRider(parcel.RiderAssignment{RiderID: kernel.NewUUID(), Email: "rider@x.com"}))

	admin := access.Actor{Email: "boss@x.com", Role: user.RoleAdmin}
	sender := access.Actor{Email: "SENDER@x.com", Role: user.RoleUser}
	rider := access.Actor{Email: "rider@x.com", Role: user.RoleRider}
	stranger := access.Actor{Email: "x@x.com", Role: user.RoleUser}

	assert.NoError(t, admin.CanManageParcel(p))
	assert.ErrorIs(t, sender.CanManageParcel(p), errs.ErrForbidden, "parcel is out for delivery")
	assert.ErrorIs(t, rider.CanManageParcel(p), errs.ErrForbidden)

	assert.NoError(t, sender.CanViewParcel(p))
	assert.NoError(t, rider.CanViewParcel(p))
	assert.ErrorIs(t, stranger.CanViewParcel(p), errs.ErrForbidden)

	assert.NoError(t, rider.CanOperateParcel(p))
	assert.ErrorIs(t, sender.CanOperateParcel(p), errs.ErrForbidden)
}

func TestActor_CanManageParcel_IdleParcel(t *testing.T) {
	p, err := parcel.NewParcel(kernel.NewUUID(), "sender@x.com", parcel.Details{}, time.Now())
	require.NoError(t, err)

	assert.NoError(t, access.Actor{Email: "sender@x.com", Role: user.RoleUser}.CanManageParcel(p))
	assert.ErrorIs(t, access.Actor{Email: "x@x.com", Role: user.RoleUser}.CanManageParcel(p), errs.ErrForbidden)
}

func TestActor_CanView(t *testing.T) {
	tests := []struct {
		name       string
		actor      access.Actor
		riderEmail string
		wantErr    bool
	}{
		{"admin", access.Actor{Email: "boss@x.com", Role: user.RoleAdmin}, "", false},
		{"sender", access.Actor{Email: "sender@x.com", Role: user.RoleUser}, "", false},
		{"assigned rider", access.Actor{Email: "rider@x.com", Role: user.RoleRider}, "rider@x.com", false},
		{"other rider", access.Actor{Email: "other@x.com", Role: user.RoleRider}, "rider@x.com", true},
		{"no rider yet", access.Actor{Email: "other@x.com", Role: user.RoleRider}, "", true},
		{"anonymous", access.Actor{Role: user.RoleNone}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.actor.CanView("sender@x.com", tt.riderEmail)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrForbidden)
				return
			}
			assert.NoError(t, err)
		})
	}
}
