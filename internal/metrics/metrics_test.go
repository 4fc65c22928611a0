package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveResolution("ready", 0.01)
	m.ObserveResolution("ready", 0.02)
	m.ObserveSourceFailure("bookings")
	m.ObserveInvalidation("slot_unavailable")
	m.ObserveCache("weekly", true)
	m.ObserveCache("weekly", false)
	m.ObserveBooking("created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolutions.WithLabelValues("ready")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sourceFailures.WithLabelValues("bookings")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invalidations.WithLabelValues("slot_unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("weekly", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("created")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *BookingMetrics
	assert.NotPanics(t, func() {
		m.ObserveResolution("ready", 1)
		m.ObserveSourceFailure("weekly_availability")
		m.ObserveInvalidation("barber_unavailable")
		m.ObserveCache("blocked", false)
		m.ObserveBooking("cancelled")
	})
}
