package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer; every method becomes a no-op.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	slotsOffered prometheus.Histogram
	bookings     *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	lockWait     prometheus.Histogram
	auditDropped prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),

		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),

		slotsOffered: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "slots_offered",
			Help:      "Bookable slots returned per availability query.",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 20, 30},
		}),

		bookings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome.",
		}, []string{"outcome"}),

		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "status_transitions_total",
			Help:      "Appointment status changes by target status and result.",
		}, []string{"to", "result"}),

		lockWait: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "booking_lock_wait_seconds",
			Help:      "Time spent waiting for the per-page booking lock.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 3},
		}),

		auditDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "audit_events_dropped_total",
			Help:      "Audit events discarded because the queue was full.",
		}),
	}
}

func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Metrics) SlotsOffered(n int) {
	if m == nil {
		return
	}
	m.slotsOffered.Observe(float64(n))
}

// Booking outcomes: created, conflict, rejected, error.
func (m *Metrics) Booking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Transition(to string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "rejected"
	}
	m.transitions.WithLabelValues(to, result).Inc()
}

func (m *Metrics) LockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.Observe(d.Seconds())
}

func (m *Metrics) AuditDropped() {
	if m == nil {
		return
	}
	m.auditDropped.Inc()
}
