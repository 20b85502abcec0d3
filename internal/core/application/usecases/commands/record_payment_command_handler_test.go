package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/tracking"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	assignFixture
	payments *MockPaymentRepository
}

func newPaymentFixture() paymentFixture {
	f := paymentFixture{assignFixture: newAssignFixture(), payments: new(MockPaymentRepository)}
	f.uow.On("PaymentRepository").Return(f.payments).Maybe()
	return f
}

func TestRecordPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newPaymentFixture()

	p := newTestParcel(t, "a@x.com")
	cmd, err := commands.NewRecordPaymentCommand(p.ID(), 500, "A@x.com", "card", "pi_123")
	require.NoError(t, err)

	var entry *payment.Payment
	var event *tracking.Event
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		f.parcels.On("MarkPaid", ctx, p.ID(), testNow).Return(nil).Once(),
		f.payments.On("Add", ctx, mock.AnythingOfType("*payment.Payment")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*payment.Payment) }).
			Return(nil).Once(),
		f.tracking.On("Append", ctx, mock.AnythingOfType("*tracking.Event")).
			Run(func(args mock.Arguments) { event = args.Get(1).(*tracking.Event) }).
			Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
	)
	f.uow.On("Rollback", ctx).Return(nil).Maybe()

	id, err := commands.NewRecordPaymentCommandHandler(f.factory, testClock).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, id.IsEqual(entry.ID()))
	assert.True(t, entry.ParcelID().IsEqual(p.ID()))
	assert.Equal(t, int64(500), entry.Amount())
	assert.Equal(t, "a@x.com", entry.CreatedBy())
	assert.Equal(t, "pi_123", entry.TransactionID())
	assert.Equal(t, testNow, entry.PaidAt())
	require.NotNil(t, event)
	assert.Equal(t, "paid", event.Status())
	f.parcels.AssertExpectations(t)
	f.payments.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func TestRecordPaymentCommandHandler_Handle_AlreadyPaid(t *testing.T) {
	ctx := t.Context()
	f := newPaymentFixture()

	// Given a parcel whose guarded update finds it already paid
	p := newTestParcel(t, "a@x.com")
	cmd, err := commands.NewRecordPaymentCommand(p.ID(), 500, "a@x.com", "card", "pi_2")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	f.parcels.On("MarkPaid", ctx, p.ID(), testNow).
		Return(errs.NewConflictError("parcel", p.ID().String(), "already paid")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = commands.NewRecordPaymentCommandHandler(f.factory, testClock).Handle(ctx, cmd)

	// Then no ledger row is written
	require.ErrorIs(t, err, errs.ErrConflict)
	f.payments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRecordPaymentCommandHandler_Handle_ParcelNotFound(t *testing.T) {
	ctx := t.Context()
	f := newPaymentFixture()

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewRecordPaymentCommand(parcelID, 500, "a@x.com", "", "")
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.parcels.On("Get", ctx, parcelID).Return(nil, errs.NewObjectNotFoundError("parcel", parcelID)).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = commands.NewRecordPaymentCommandHandler(f.factory, testClock).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.parcels.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewRecordPaymentCommand(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		email   string
		wantErr error
	}{
		{"zero amount", 0, "a@x.com", errs.ErrValueIsOutOfRange},
		{"negative amount", -5, "a@x.com", errs.ErrValueIsOutOfRange},
		{"missing payer", 500, "", errs.ErrValueIsRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewRecordPaymentCommand(kernel.NewUUID(), tt.amount, tt.email, "card", "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
