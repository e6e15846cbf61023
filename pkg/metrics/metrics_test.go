package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncAdmission("admitted")
	m.IncAdmission("admitted")
	m.IncAdmission("conflict")
	m.IncTransition("approved")
	m.IncMembership("upgraded")
	m.IncRateLimited()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingAdmissions.WithLabelValues("admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingAdmissions.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues("approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MembershipChanges.WithLabelValues("upgraded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncAdmission("admitted")
		m.IncTransition("approved")
		m.IncMembership("revoked")
		m.IncPaymentIntent("succeeded")
		m.IncRateLimited()
		m.ObserveHTTP("/", "GET", "200", 0.1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.IncAdmission("admitted")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sports_club_booking_admissions_total")
}
