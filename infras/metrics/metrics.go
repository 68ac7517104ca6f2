package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultNamespace = "cleanbook"

type collectors struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	bookingsCreated    *prometheus.CounterVec
	statusTransitions  *prometheus.CounterVec
	bookingNumberRetry prometheus.Counter
	payments           *prometheus.CounterVec
	notifications      *prometheus.CounterVec
}

var (
	once sync.Once

	registered = newCollectors(defaultNamespace)
)

func newCollectors(namespace string) *collectors {
	return &collectors{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route pattern and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route pattern.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		bookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_created_total",
				Help:      "Created bookings by kind (guest or member).",
			},
			[]string{"kind"},
		),
		statusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_status_transitions_total",
				Help:      "Applied booking status transitions.",
			},
			[]string{"from", "to"},
		),
		bookingNumberRetry: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_number_retries_total",
				Help:      "Booking number regenerations after a unique violation.",
			},
		),
		payments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_total",
				Help:      "Payment gateway operations by outcome.",
			},
			[]string{"operation", "result"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Best-effort notifications by channel and outcome.",
			},
			[]string{"channel", "result"},
		),
	}
}

func (c *collectors) all() []prometheus.Collector {
	return []prometheus.Collector{
		c.httpRequests,
		c.httpDuration,
		c.bookingsCreated,
		c.statusTransitions,
		c.bookingNumberRetry,
		c.payments,
		c.notifications,
	}
}

// Register registers the collectors with the default registry. Safe to call multiple times;
// only the namespace of the first call is used.
func Register(namespace string) {
	once.Do(func() {
		if namespace != "" && namespace != defaultNamespace {
			registered = newCollectors(namespace)
		}

		prometheus.MustRegister(registered.all()...)
	})
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	registered.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	registered.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func IncBookingCreated(kind string) {
	registered.bookingsCreated.WithLabelValues(kind).Inc()
}

func IncStatusTransition(from, to string) {
	registered.statusTransitions.WithLabelValues(from, to).Inc()
}

func IncBookingNumberRetry() {
	registered.bookingNumberRetry.Inc()
}

func IncPayment(operation string, err error) {
	registered.payments.WithLabelValues(operation, result(err)).Inc()
}

func IncNotification(channel string, err error) {
	registered.notifications.WithLabelValues(channel, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
