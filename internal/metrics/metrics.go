package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the process-wide Prometheus collectors. All names are
// prefixed with "nutrilog_".
type Metrics struct {
	PersistFailuresTotal    *prometheus.CounterVec
	RefetchesTotal          *prometheus.CounterVec
	DuplicateRecoveredTotal *prometheus.CounterVec
	TotalsHealedTotal       prometheus.Counter
	LookupRequestsTotal     *prometheus.CounterVec
	ActiveSessions          prometheus.Gauge
}

// NewMetrics registers the collectors once and returns the shared set.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			PersistFailuresTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nutrilog_persist_failures_total",
					Help: "Background day log writes that failed",
				},
				[]string{"op"},
			),
			RefetchesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nutrilog_refetches_total",
					Help: "Day re-fetches triggered by failed writes",
				},
				[]string{"result"},
			),
			DuplicateRecoveredTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nutrilog_duplicate_recovered_total",
					Help: "Creates that hit a unique violation and re-read the existing row",
				},
				[]string{"entity"},
			),
			TotalsHealedTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "nutrilog_totals_healed_total",
					Help: "Persisted day totals rewritten after diverging from their items",
				},
			),
			LookupRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "nutrilog_lookup_requests_total",
					Help: "External food lookup requests by outcome",
				},
				[]string{"op", "result"},
			),
			ActiveSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "nutrilog_active_sessions",
					Help: "Day log sessions currently held in memory",
				},
			),
		}
	})
	return globalMetrics
}
