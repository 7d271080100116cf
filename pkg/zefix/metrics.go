package zefix

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects client-side request and throttle metrics. A nil *Metrics
// records nothing.
type Metrics struct {
	RequestsTotal          *prometheus.CounterVec
	ThrottleWaitSeconds    prometheus.Histogram
	ThrottleCancelledTotal prometheus.Counter
}

// DefaultMetricsClient is the client label of clients that set no name.
const DefaultMetricsClient = "default"

// NewMetrics creates the collectors, labelled client="<client>", and
// registers them with reg. Collectors already registered under the same
// client label are reused, so clients sharing a registry and a name share
// their series. A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer, client string) (*Metrics, error) {
	if client == "" {
		client = DefaultMetricsClient
	}

	labels := prometheus.Labels{"client": client}

	metrics := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "zefix_requests_total",
			Help:        "Total number of ZEFIX API responses by method and status code",
			ConstLabels: labels,
		}, []string{"method", "code"}),
		ThrottleWaitSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "zefix_throttle_wait_seconds",
			Help:        "Time requests spent waiting for the client throttle",
			Buckets:     prometheus.ExponentialBuckets(0.005, 2, 12),
			ConstLabels: labels,
		}),
		ThrottleCancelledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "zefix_throttle_cancelled_total",
			Help:        "Total number of requests cancelled while waiting for the client throttle",
			ConstLabels: labels,
		}),
	}

	if reg == nil {
		return metrics, nil
	}

	var err error

	if metrics.RequestsTotal, err = register(reg, metrics.RequestsTotal); err != nil {
		return nil, err
	}

	if metrics.ThrottleWaitSeconds, err = register(reg, metrics.ThrottleWaitSeconds); err != nil {
		return nil, err
	}

	if metrics.ThrottleCancelledTotal, err = register(reg, metrics.ThrottleCancelledTotal); err != nil {
		return nil, err
	}

	return metrics, nil
}

// register returns the collector already registered for the same metric and
// labels when there is one.
func register[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var registered prometheus.AlreadyRegisteredError
	if errors.As(err, &registered) {
		if existing, ok := registered.ExistingCollector.(T); ok {
			return existing, nil
		}
	}

	return collector, fmt.Errorf("registering metrics: %w", err)
}

func (m *Metrics) observeResponse(method string, statusCode int) {
	if m == nil {
		return
	}

	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

func (m *Metrics) observeThrottleWait(d time.Duration) {
	if m == nil {
		return
	}

	m.ThrottleWaitSeconds.Observe(d.Seconds())
}

func (m *Metrics) throttleCancelled() {
	if m == nil {
		return
	}

	m.ThrottleCancelledTotal.Inc()
}
