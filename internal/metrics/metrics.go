package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for availability resolution and bookings.
// A nil *BookingMetrics is valid and records nothing.
type BookingMetrics struct {
	resolutions    *prometheus.CounterVec
	sourceFailures *prometheus.CounterVec
	invalidations  *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	bookings       *prometheus.CounterVec
	resolveLatency prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "availability",
			Name:      "resolutions_total",
			Help:      "Availability resolutions by resulting state",
		}, []string{"state"}),
		sourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "availability",
			Name:      "source_failures_total",
			Help:      "Failed upstream reads by source",
		}, []string{"source"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "availability",
			Name:      "selection_invalidations_total",
			Help:      "Selected slots cleared on recompute, by reason",
		}, []string{"reason"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Availability cache lookups by source and result",
		}, []string{"source", "result"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barbershop",
			Subsystem: "bookings",
			Name:      "events_total",
			Help:      "Booking lifecycle events",
		}, []string{"event"}),
		resolveLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "barbershop",
			Subsystem: "availability",
			Name:      "resolve_seconds",
			Help:      "Time spent loading sources and resolving availability",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.resolutions, m.sourceFailures, m.invalidations, m.cacheLookups, m.bookings, m.resolveLatency)
	return m
}

func (m *BookingMetrics) ObserveResolution(state string, seconds float64) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(state).Inc()
	m.resolveLatency.Observe(seconds)
}

func (m *BookingMetrics) ObserveSourceFailure(source string) {
	if m == nil {
		return
	}
	m.sourceFailures.WithLabelValues(source).Inc()
}

func (m *BookingMetrics) ObserveInvalidation(reason string) {
	if m == nil {
		return
	}
	m.invalidations.WithLabelValues(reason).Inc()
}

func (m *BookingMetrics) ObserveCache(source string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(source, result).Inc()
}

func (m *BookingMetrics) ObserveBooking(event string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(event).Inc()
}
