package zefix_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_Registers(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	metrics, err := zefix.NewMetrics(registry, "")
	require.NoError(t, err)
	metrics.RequestsTotal.WithLabelValues("GET", "200").Inc()

	count, err := testutil.GatherAndCount(registry,
		"zefix_requests_total", "zefix_throttle_wait_seconds", "zefix_throttle_cancelled_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	expected := `
# HELP zefix_requests_total Total number of ZEFIX API responses by method and status code
# TYPE zefix_requests_total counter
zefix_requests_total{client="default",code="200",method="GET"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "zefix_requests_total"))
}

func TestNewMetrics_SharedRegistry(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	first, err := zefix.NewMetrics(registry, "")
	require.NoError(t, err)

	second, err := zefix.NewMetrics(registry, "")
	require.NoError(t, err)

	registries, err := zefix.NewMetrics(registry, "registries")
	require.NoError(t, err)

	first.RequestsTotal.WithLabelValues("GET", "200").Inc()
	second.RequestsTotal.WithLabelValues("GET", "200").Inc()
	registries.RequestsTotal.WithLabelValues("GET", "200").Inc()

	// Same name, same series.
	assert.Same(t, first.RequestsTotal, second.RequestsTotal)
	assert.InDelta(t, 2, testutil.ToFloat64(first.RequestsTotal.WithLabelValues("GET", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(registries.RequestsTotal.WithLabelValues("GET", "200")), 0)

	count, err := testutil.GatherAndCount(registry, "zefix_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewMetrics_ConflictingCollector(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zefix_throttle_cancelled_total",
		Help: "something else",
	}))

	_, err := zefix.NewMetrics(registry, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registering metrics")
}

func TestMetrics_ThrottleWait(t *testing.T) {
	t.Parallel()

	metrics, err := zefix.NewMetrics(nil, "")
	require.NoError(t, err)

	gate := zefix.NewGate(nil, &zefix.ThrottleConfig{MinInterval: time.Second},
		zefix.WithClock(newFakeClock()), zefix.WithGateMetrics(metrics))

	for range 3 {
		_, err := gate.Decorate(context.Background(), newRequest())
		require.NoError(t, err)
	}

	var sample dto.Metric

	err = metrics.ThrottleWaitSeconds.Write(&sample)
	require.NoError(t, err)

	// The first request does not wait.
	assert.Equal(t, uint64(2), sample.GetHistogram().GetSampleCount())
	assert.InDelta(t, 2.0, sample.GetHistogram().GetSampleSum(), 1e-9)
}
