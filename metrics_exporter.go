package neurallog

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// MetricsExporter exposes delivery metrics via a Prometheus-style HTTP
// handler. Feed it snapshots with Observe, typically on a timer or from a
// failure handler, and mount it on a debug mux.
type MetricsExporter struct {
	enqueued       atomic.Uint64
	batches        atomic.Uint64
	delivered      atomic.Uint64
	retried        atomic.Uint64
	failed         atomic.Uint64
	droppedRecords atomic.Uint64
}

// NewMetricsExporter creates a new exporter instance.
func NewMetricsExporter() *MetricsExporter {
	return &MetricsExporter{}
}

// Observe records a delivery metrics snapshot.
func (e *MetricsExporter) Observe(metrics DeliveryMetrics) {
	e.enqueued.Store(metrics.Enqueued)
	e.batches.Store(metrics.Batches)
	e.delivered.Store(metrics.Delivered)
	e.retried.Store(metrics.Retried)
	e.failed.Store(metrics.Failed)
	e.droppedRecords.Store(metrics.DroppedRecords)
}

// ServeHTTP renders the metrics using Prometheus exposition format.
func (e *MetricsExporter) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintln(w, "# HELP neurallog_records_enqueued_total Total records accepted into batch buffers")
	fmt.Fprintln(w, "# TYPE neurallog_records_enqueued_total counter")
	fmt.Fprintf(w, "neurallog_records_enqueued_total %d\n", e.enqueued.Load())

	fmt.Fprintln(w, "# HELP neurallog_batches_total Total batches handed to the dispatcher")
	fmt.Fprintln(w, "# TYPE neurallog_batches_total counter")
	fmt.Fprintf(w, "neurallog_batches_total %d\n", e.batches.Load())

	fmt.Fprintln(w, "# HELP neurallog_batches_delivered_total Total batches delivered to the collector")
	fmt.Fprintln(w, "# TYPE neurallog_batches_delivered_total counter")
	fmt.Fprintf(w, "neurallog_batches_delivered_total %d\n", e.delivered.Load())

	fmt.Fprintln(w, "# HELP neurallog_delivery_retries_total Total delivery retry attempts")
	fmt.Fprintln(w, "# TYPE neurallog_delivery_retries_total counter")
	fmt.Fprintf(w, "neurallog_delivery_retries_total %d\n", e.retried.Load())

	fmt.Fprintln(w, "# HELP neurallog_batches_failed_total Total batches dropped after exhausting retries")
	fmt.Fprintln(w, "# TYPE neurallog_batches_failed_total counter")
	fmt.Fprintf(w, "neurallog_batches_failed_total %d\n", e.failed.Load())

	fmt.Fprintln(w, "# HELP neurallog_records_dropped_total Total records lost in dropped batches")
	fmt.Fprintln(w, "# TYPE neurallog_records_dropped_total counter")
	fmt.Fprintf(w, "neurallog_records_dropped_total %d\n", e.droppedRecords.Load())
}
