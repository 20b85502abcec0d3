package ledgerrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/adapters/out/postgres/ledgerrepo"
	"parcelhub/internal/adapters/out/postgres/pgtest"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type LedgerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	tracker   *MockAggregateTracker
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.tracker = new(MockAggregateTracker)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestPayment_Add() {
	ctx := context.Background()
	repo := ledgerrepo.NewGormPaymentRepository(suite.db, suite.tracker)
	paidAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), 150, "A@x.com", "card", "pi_123", paidAt)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", p.ID(), p).Once()

	suite.Require().NoError(repo.Add(ctx, p))

	var dto ledgerrepo.PaymentDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", p.ID().Bytes()).Error)
	got, err := ledgerrepo.PaymentToDomain(dto)
	suite.Require().NoError(err)
	suite.Equal(int64(150), got.Amount())
	suite.Equal("a@x.com", got.CreatedBy())
	suite.Equal("pi_123", got.TransactionID())
	suite.True(paidAt.Equal(got.PaidAt()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestTracking_Append() {
	ctx := context.Background()
	repo := ledgerrepo.NewGormTrackingRepository(suite.db, suite.tracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Twice()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	parcelID := kernel.NewUUID()
	withParcel, err := tracking.NewEvent(kernel.NewUUID(), "TRK-1", &parcelID, "created", "booked", "a@x.com", at)
	suite.Require().NoError(err)
	orphan, err := tracking.NewEvent(kernel.NewUUID(), "TRK-1", nil, "note", "called receiver", "a@x.com", at.Add(time.Minute))
	suite.Require().NoError(err)

	suite.Require().NoError(repo.Append(ctx, withParcel))
	suite.Require().NoError(repo.Append(ctx, orphan))

	var dtos []ledgerrepo.TrackingEventDTO
	suite.Require().NoError(suite.db.Where("tracking_id = ?", "TRK-1").Order("at ASC").Find(&dtos).Error)
	suite.Require().Len(dtos, 2)

	first, err := ledgerrepo.EventToDomain(dtos[0])
	suite.Require().NoError(err)
	suite.Require().NotNil(first.ParcelID())
	suite.True(parcelID.IsEqual(*first.ParcelID()))

	second, err := ledgerrepo.EventToDomain(dtos[1])
	suite.Require().NoError(err)
	suite.Nil(second.ParcelID())
	suite.Equal("called receiver", second.Details())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestTracking_AppendUnconstructed() {
	repo := ledgerrepo.NewGormTrackingRepository(suite.db, suite.tracker)

	err := repo.Append(context.Background(), &tracking.Event{})

	suite.Require().ErrorIs(err, tracking.ErrEventIsNotConstructed)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func TestLedgerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerRepositoryIntegrationTestSuite))
}
