package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Lookup related metrics
	LookupsTotal    *prometheus.CounterVec
	LookupLatency   prometheus.Histogram
	LookupCacheHits prometheus.Counter

	// Check-in metrics
	CheckinsTotal    prometheus.Counter
	CheckinFailures  prometheus.Counter
	BatchCheckinSize prometheus.Histogram
}

// New creates the application metrics. Collectors are not registered;
// call Register with the registry the metrics endpoint serves.
func New(namespace string) *Metrics {
	return &Metrics{
		LookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_lookups_total",
			Help:      "Total number of booking lookups by search mode and status",
		}, []string{"mode", "status"}),
		LookupLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_lookup_duration_seconds",
			Help:      "Duration of booking lookups",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		LookupCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_lookup_cache_hits_total",
			Help:      "Total number of booking lookups served from cache",
		}),
		CheckinsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_total",
			Help:      "Total number of recorded check-ins",
		}),
		CheckinFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkin_failures_total",
			Help:      "Total number of failed check-in attempts",
		}),
		BatchCheckinSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_checkin_size",
			Help:      "Number of eligible bookings per batch check-in",
			Buckets:   []float64{1, 2, 3, 5, 8, 13},
		}),
	}
}

// Register registers all collectors with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.LookupsTotal,
		m.LookupLatency,
		m.LookupCacheHits,
		m.CheckinsTotal,
		m.CheckinFailures,
		m.BatchCheckinSize,
	)
}
