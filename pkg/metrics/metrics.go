package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sports_club"

// Metrics holds Prometheus metrics for the booking core and the HTTP surface.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// BookingAdmissions counts creation attempts by result (admitted, conflict, invalid, error).
	BookingAdmissions *prometheus.CounterVec

	// StatusTransitions counts committed status changes by target status.
	StatusTransitions *prometheus.CounterVec

	// MembershipChanges counts upgrades and revocations.
	MembershipChanges *prometheus.CounterVec

	// PaymentIntents counts payment intent attempts by result.
	PaymentIntents *prometheus.CounterVec

	// RateLimited counts requests refused by the rate limiter.
	RateLimited prometheus.Counter

	// HTTPDuration is the request latency by route pattern, method and status.
	HTTPDuration *prometheus.HistogramVec
}

// New registers all metrics on reg, plus the Go and process collectors.
func New(reg *prometheus.Registry) *Metrics {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		BookingAdmissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_admissions_total",
				Help:      "Total number of booking creation attempts",
			},
			[]string{"result"},
		),

		StatusTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_status_transitions_total",
				Help:      "Total number of booking status changes",
			},
			[]string{"status"},
		),

		MembershipChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "membership_changes_total",
				Help:      "Total number of membership upgrades and revocations",
			},
			[]string{"action"},
		),

		PaymentIntents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_intents_total",
				Help:      "Total number of payment intent attempts",
			},
			[]string{"result"},
		),

		RateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_requests_total",
				Help:      "Total number of requests refused by the rate limiter",
			},
		),

		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) IncAdmission(result string) {
	if m == nil {
		return
	}
	m.BookingAdmissions.WithLabelValues(result).Inc()
}

func (m *Metrics) IncTransition(status string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncMembership(action string) {
	if m == nil {
		return
	}
	m.MembershipChanges.WithLabelValues(action).Inc()
}

func (m *Metrics) IncPaymentIntent(result string) {
	if m == nil {
		return
	}
	m.PaymentIntents.WithLabelValues(result).Inc()
}

func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

func (m *Metrics) ObserveHTTP(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(route, method, status).Observe(seconds)
}
