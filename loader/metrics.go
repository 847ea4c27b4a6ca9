package loader

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the loader.
type Metrics struct {
	Registry           *prometheus.Registry
	RequestsTotal      *prometheus.CounterVec
	LoadDuration       prometheus.Histogram
	RecordsLoadedTotal prometheus.Counter
	RowsSkippedTotal   prometheus.Counter
	ErrorsTotal        *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_source_requests_total",
			Help: "Total HTTP requests issued for catalog sources.",
		},
		[]string{"phase"},
	)
	loadDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "End-to-end duration of source loads.",
			Buckets: prometheus.DefBuckets,
		},
	)
	recordsLoaded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_records_loaded_total",
			Help: "Total raw records parsed from sources.",
		},
	)
	rowsSkipped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_skipped_total",
			Help: "Total fully-empty rows skipped during parsing.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_load_errors_total",
			Help: "Total load failures by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, loadDuration, recordsLoaded, rowsSkipped, errorsTotal)

	return &Metrics{
		Registry:           registry,
		RequestsTotal:      requests,
		LoadDuration:       loadDuration,
		RecordsLoadedTotal: recordsLoaded,
		RowsSkippedTotal:   rowsSkipped,
		ErrorsTotal:        errorsTotal,
	}
}

// IncRequest increments the requests total counter.
func (m *Metrics) IncRequest(phase string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(phase).Inc()
}

// ObserveLoad records a source load duration.
func (m *Metrics) ObserveLoad(d time.Duration) {
	if m == nil {
		return
	}
	m.LoadDuration.Observe(d.Seconds())
}

// AddRecords adds to the records loaded counter.
func (m *Metrics) AddRecords(n int) {
	if m == nil {
		return
	}
	m.RecordsLoadedTotal.Add(float64(n))
}

// AddSkippedRows adds to the skipped rows counter.
func (m *Metrics) AddSkippedRows(n int) {
	if m == nil {
		return
	}
	m.RowsSkippedTotal.Add(float64(n))
}

// IncError increments the load errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
