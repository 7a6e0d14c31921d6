// Package metrics provides Prometheus metrics for the card inventory service.
// Scrape these at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cards_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cards_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Record store metrics
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cards_store_operations_total",
			Help: "Record store operations by backend, operation and outcome",
		},
		[]string{"backend", "op", "outcome"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cards_store_operation_duration_seconds",
			Help:    "Record store operation latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"backend", "op"},
	)

	StoreLockRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cards_store_lock_retries_total",
			Help: "Writes rejected because the backing file was locked, by backend and operation",
		},
		[]string{"backend", "op"},
	)

	// Ledger metrics
	LedgerRecordsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cards_ledger_records_loaded",
			Help: "Number of records in the most recently loaded snapshot",
		},
	)

	ParseWarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cards_parse_warnings_total",
			Help: "Cells that could not be parsed and fell back to a default",
		},
		[]string{"field"},
	)

	SnapshotCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cards_snapshot_cache_total",
			Help: "Snapshot cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)
)

// Outcome labels for StoreOperationsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Outcome returns the outcome label for an operation result.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// ObserveStoreOp records the outcome and latency of one record store call.
// Use it as: defer metrics.ObserveStoreOp(name, "append", time.Now(), &err).
func ObserveStoreOp(backend, op string, start time.Time, err *error) {
	var opErr error
	if err != nil {
		opErr = *err
	}
	StoreOperationsTotal.WithLabelValues(backend, op, Outcome(opErr)).Inc()
	StoreOperationDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}
