package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// POSMetrics содержит метрики продаж и внешних вызовов POS.
type POSMetrics struct {
	// Счётчики checkout
	ordersCreated    prometheus.Counter
	checkoutFailures *prometheus.CounterVec

	// Гистограммы
	orderAmountMinor prometheus.Histogram
	checkoutDuration prometheus.Histogram

	// Внешние вызовы
	reportRuns *prometheus.CounterVec
	linePushes *prometheus.CounterVec

	// HTTP API
	httpDuration *prometheus.HistogramVec
}

// NewPOSMetrics создаёт метрики в default-реестре.
func NewPOSMetrics() *POSMetrics {
	return newPOSMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newPOSMetricsWithRegisterer(registerer prometheus.Registerer) *POSMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &POSMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_orders_created_total",
			Help: "Total number of orders persisted by checkout",
		}),
		checkoutFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "pos_checkout_failures_total",
			Help: "Total number of failed checkout attempts grouped by reason",
		}, []string{"reason"}),
		orderAmountMinor: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "pos_order_amount_minor",
			Help:    "Order totals in minor currency units",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 12),
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "pos_checkout_duration_seconds",
			Help:    "Duration of checkout operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		reportRuns: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "pos_report_runs_total",
			Help: "Total number of daily report runs grouped by result",
		}, []string{"result"}),
		linePushes: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "pos_line_pushes_total",
			Help: "Total number of LINE push attempts grouped by result",
		}, []string{"result"}),
		httpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "Duration of HTTP API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated фиксирует успешную продажу и её сумму.
func (m *POSMetrics) RecordOrderCreated(amountMinor int64) {
	m.ordersCreated.Inc()
	m.orderAmountMinor.Observe(float64(amountMinor))
}

// RecordCheckoutFailure увеличивает счётчик неудачных checkout по причине.
func (m *POSMetrics) RecordCheckoutFailure(reason string) {
	m.checkoutFailures.WithLabelValues(reason).Inc()
}

// RecordCheckoutDuration записывает длительность checkout.
func (m *POSMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordReportRun фиксирует запуск отчёта ("ok" | "empty" | "error").
func (m *POSMetrics) RecordReportRun(result string) {
	m.reportRuns.WithLabelValues(result).Inc()
}

// RecordLinePush фиксирует попытку доставки LINE-сообщения ("ok" | "error").
func (m *POSMetrics) RecordLinePush(result string) {
	m.linePushes.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest записывает длительность HTTP-запроса API.
func (m *POSMetrics) ObserveHTTPRequest(route, method, status string, duration time.Duration) {
	m.httpDuration.WithLabelValues(route, method, status).Observe(duration.Seconds())
}
