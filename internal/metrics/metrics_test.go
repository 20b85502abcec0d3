package metrics_test

import (
	"testing"

	"parcelhub/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	m := metrics.New(reg)
	m.Assignments.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "parcel_assignments_total")
}

func TestObserveReconciliation(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveReconciliation(2, 1, 3)
	m.ObserveReconciliation(0, 1, 0)

	assert.InDelta(t, 2, testutil.ToFloat64(m.ReconcileDrift.WithLabelValues("stale")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.ReconcileDrift.WithLabelValues("idle")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.ReconcileRepaired), 0)
}

func TestObserveConflict(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveConflict("cashout")

	assert.InDelta(t, 1, testutil.ToFloat64(m.Conflicts.WithLabelValues("cashout")), 0)
}
