package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func newIsolatedMetrics() *POSMetrics {
	return newPOSMetricsWithRegisterer(prometheus.NewRegistry())
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRecordOrderCreated(t *testing.T) {
	metrics := newIsolatedMetrics()

	metrics.RecordOrderCreated(5500)
	metrics.RecordOrderCreated(12000)

	if got := counterValue(t, metrics.ordersCreated); got != 2 {
		t.Fatalf("orders created = %v, want 2", got)
	}
}

func TestRecordCheckoutFailure(t *testing.T) {
	metrics := newIsolatedMetrics()

	metrics.RecordCheckoutFailure("empty_cart")
	metrics.RecordCheckoutFailure("store")
	metrics.RecordCheckoutFailure("store")

	if got := counterValue(t, metrics.checkoutFailures.WithLabelValues("store")); got != 2 {
		t.Fatalf("store failures = %v, want 2", got)
	}
	if got := counterValue(t, metrics.checkoutFailures.WithLabelValues("empty_cart")); got != 1 {
		t.Fatalf("empty cart failures = %v, want 1", got)
	}
}

func TestRecordReportRunAndLinePush(t *testing.T) {
	metrics := newIsolatedMetrics()

	metrics.RecordReportRun("ok")
	metrics.RecordLinePush("error")

	if got := counterValue(t, metrics.reportRuns.WithLabelValues("ok")); got != 1 {
		t.Fatalf("report runs = %v, want 1", got)
	}
	if got := counterValue(t, metrics.linePushes.WithLabelValues("error")); got != 1 {
		t.Fatalf("line pushes = %v, want 1", got)
	}
}

func TestDoubleRegistrationReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newPOSMetricsWithRegisterer(registry)
	second := newPOSMetricsWithRegisterer(registry)

	first.RecordOrderCreated(1000)
	second.RecordOrderCreated(2000)

	if got := counterValue(t, second.ordersCreated); got != 2 {
		t.Fatalf("shared counter = %v, want 2", got)
	}
}

func TestObserveDurationsDoNotPanic(t *testing.T) {
	metrics := newIsolatedMetrics()

	metrics.RecordCheckoutDuration(25 * time.Millisecond)
	metrics.ObserveHTTPRequest("/api/catalog", "GET", "200", 3*time.Millisecond)
}
