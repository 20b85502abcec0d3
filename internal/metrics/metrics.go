// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups every collector. Build it once with New and pass it to the
// components that record into it.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	Assignments         prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	PaymentsRecorded    prometheus.Counter
	Cashouts            prometheus.Counter
	Conflicts           *prometheus.CounterVec
	ReconcileDrift      *prometheus.CounterVec
	ReconcileRepaired   prometheus.Counter
	TrackingPublished   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		Assignments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parcel_assignments_total",
			Help: "Riders assigned to parcels",
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parcel_status_transitions_total",
			Help: "Delivery status changes by target status",
		}, []string{"status"}),
		PaymentsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "Payments appended to the ledger",
		}),
		Cashouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parcel_cashouts_total",
			Help: "Parcels cashed out",
		}),
		Conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guarded_update_conflicts_total",
			Help: "Operations declined because a guarded update matched nothing",
		}, []string{"operation"}),
		ReconcileDrift: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rider_reconcile_drift_total",
			Help: "Riders found with availability disagreeing with their parcels",
		}, []string{"kind"}),
		ReconcileRepaired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rider_reconcile_repaired_total",
			Help: "Riders whose availability was repaired",
		}),
		TrackingPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_events_published_total",
			Help: "Tracking events handed to the broker by result",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.Assignments,
		m.StatusTransitions,
		m.PaymentsRecorded,
		m.Cashouts,
		m.Conflicts,
		m.ReconcileDrift,
		m.ReconcileRepaired,
		m.TrackingPublished,
	)

	return m
}

// ObserveConflict counts a declined guarded update.
func (m *Metrics) ObserveConflict(operation string) {
	m.Conflicts.WithLabelValues(operation).Inc()
}

// ObserveReconciliation records one reconciliation run.
func (m *Metrics) ObserveReconciliation(stale, idle, repaired int) {
	m.ReconcileDrift.WithLabelValues("stale").Add(float64(stale))
	m.ReconcileDrift.WithLabelValues("idle").Add(float64(idle))
	m.ReconcileRepaired.Add(float64(repaired))
}
