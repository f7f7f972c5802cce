// Package metrics exposes Prometheus metrics for document validation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "document_validator"

// Metrics holds the validator's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	ValidationsTotal   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
	CacheLookups       *prometheus.CounterVec
	RequestsTotal      *prometheus.CounterVec
}

// New registers all collectors on a fresh registry, so several instances
// can coexist in tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ValidationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Total documents validated, by document type and outcome",
		}, []string{"document_type", "valid"}),
		ValidationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Time spent classifying and validating a document",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"document_type"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by outcome (hit, miss, error)",
		}, []string{"outcome"}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) ObserveValidation(documentType string, valid bool, elapsed time.Duration) {
	m.ValidationsTotal.WithLabelValues(documentType, strconv.FormatBool(valid)).Inc()
	m.ValidationDuration.WithLabelValues(documentType).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCacheLookup(outcome string) {
	m.CacheLookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRequest(route string, status int) {
	m.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
