package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feedback_insights"

// Metrics owns a private registry with the service's collectors.
type Metrics struct {
	handler      http.Handler
	rpcDuration  *prometheus.HistogramVec
	rpcTotal     *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	loadTotal    *prometheus.CounterVec
	tableRecords *prometheus.GaugeVec
}

// New registers the collectors. Process and Go runtime collectors are
// included.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "Duration of gRPC requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
		rpcTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Total number of gRPC requests",
		}, []string{"method", "code"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "table_load_duration_seconds",
			Help:      "Time spent loading a feedback table",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		loadTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_loads_total",
			Help:      "Feedback table loads by outcome",
		}, []string{"source", "status"}),
		tableRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_records",
			Help:      "Records in the last successfully loaded table",
		}, []string{"source"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcDuration,
		m.rpcTotal,
		m.loadDuration,
		m.loadTotal,
		m.tableRecords,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// ObserveRPC records one finished gRPC call.
func (m *Metrics) ObserveRPC(method, code string, elapsed time.Duration) {
	m.rpcTotal.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method, code).Observe(elapsed.Seconds())
}

// ObserveLoad records one table load.
func (m *Metrics) ObserveLoad(source string, records int, err error, elapsed time.Duration) {
	m.loadDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	if err != nil {
		m.loadTotal.WithLabelValues(source, "error").Inc()
		return
	}
	m.loadTotal.WithLabelValues(source, "ok").Inc()
	m.tableRecords.WithLabelValues(source).Set(float64(records))
}
