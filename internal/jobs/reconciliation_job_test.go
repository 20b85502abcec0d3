package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockReconciler struct{ mock.Mock }

func (m *MockReconciler) Handle(ctx context.Context, cmd commands.ReconcileRidersCommand) (commands.ReconciliationReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ReconciliationReport), args.Error(1)
}

func TestReconciliationJob_Run(t *testing.T) {
	ctx := t.Context()

	t.Run("drift is logged and counted", func(t *testing.T) {
		// Given
		handler := new(MockReconciler)
		handler.On("Handle", ctx, commands.NewReconcileRidersCommand(true)).
			Return(commands.ReconciliationReport{
				Stale:    []kernel.UUID{kernel.NewUUID()},
				Idle:     []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()},
				Repaired: 3,
			}, nil).Once()
		core, logs := observer.New(zap.DebugLevel)
		m := metrics.New(prometheus.NewRegistry())
		job := NewReconciliationJob(handler, "", true, m, zap.New(core))

		// When
		job.Run(ctx)

		// Then
		handler.AssertExpectations(t)
		require.Equal(t, 1, logs.FilterMessage("rider availability drift").Len())
		assert.InDelta(t, 1, testutil.ToFloat64(m.ReconcileDrift.WithLabelValues("stale")), 0)
		assert.InDelta(t, 2, testutil.ToFloat64(m.ReconcileDrift.WithLabelValues("idle")), 0)
		assert.InDelta(t, 3, testutil.ToFloat64(m.ReconcileRepaired), 0)
	})

	t.Run("clean scan logs nothing above debug", func(t *testing.T) {
		handler := new(MockReconciler)
		handler.On("Handle", ctx, mock.Anything).Return(commands.ReconciliationReport{}, nil).Once()
		core, logs := observer.New(zap.InfoLevel)
		job := NewReconciliationJob(handler, "", false, nil, zap.New(core))

		job.Run(ctx)

		assert.Zero(t, logs.Len())
	})

	t.Run("failure is logged", func(t *testing.T) {
		handler := new(MockReconciler)
		handler.On("Handle", ctx, mock.Anything).Return(commands.ReconciliationReport{}, errors.New("db down")).Once()
		core, logs := observer.New(zap.InfoLevel)
		job := NewReconciliationJob(handler, "", false, nil, zap.New(core))

		job.Run(ctx)

		require.Equal(t, 1, logs.FilterMessage("reconciliation failed").Len())
	})
}

func TestReconciliationJob_Schedule(t *testing.T) {
	var runs atomic.Int32
	handler := new(MockReconciler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { runs.Add(1) }).
		Return(commands.ReconciliationReport{}, nil)

	job := NewReconciliationJob(handler, "@every 1s", false, nil, zap.NewNop())
	manager := NewJobManager(job)
	require.NoError(t, manager.StartAll(t.Context()))

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	manager.StopAll()
}

func TestJobManager_StartAll_InvalidSchedule(t *testing.T) {
	job := NewReconciliationJob(new(MockReconciler), "every minute", false, nil, zap.NewNop())

	err := NewJobManager(job).StartAll(t.Context())

	require.ErrorContains(t, err, "failed to start reconciliation job")
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("@every 1m"))
	assert.NoError(t, ValidateSchedule("*/30 * * * * *"))
	assert.NoError(t, ValidateSchedule("0 * * * *"))
	assert.Error(t, ValidateSchedule("every minute"))
}
