// Package observability exposes Prometheus metrics for the export worker.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics tracks the export worker's queue and chunk activity. A stuck
// export (chunk written but follow-up never enqueued) shows up here as chunk
// counters going flat while the queue stays empty; alerting on that is the
// operational backstop for the at-least-once window.
type WorkerMetrics struct {
	PollCycles       prometheus.Counter
	MessagesHandled  *prometheus.CounterVec
	ChunksProcessed  prometheus.Counter
	ExportsCompleted prometheus.Counter
	ChunkDuration    prometheus.Histogram

	registry *prometheus.Registry
}

// NewWorkerMetrics creates and registers the worker metric set on its own
// registry.
func NewWorkerMetrics() *WorkerMetrics {
	registry := prometheus.NewRegistry()

	m := &WorkerMetrics{
		PollCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listkeeper_export_poll_cycles_total",
			Help: "Number of queue poll cycles executed.",
		}),
		MessagesHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listkeeper_export_messages_handled_total",
			Help: "Messages handled by outcome (acked, retained, delete_failed).",
		}, []string{"outcome"}),
		ChunksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listkeeper_export_chunks_processed_total",
			Help: "Export chunks processed successfully.",
		}),
		ExportsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listkeeper_exports_completed_total",
			Help: "Export requests that reached their terminal chunk.",
		}),
		ChunkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "listkeeper_export_chunk_duration_seconds",
			Help:    "Wall time per export chunk.",
			Buckets: prometheus.DefBuckets,
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.PollCycles,
		m.MessagesHandled,
		m.ChunksProcessed,
		m.ExportsCompleted,
		m.ChunkDuration,
	)
	return m
}

// Handler returns the scrape endpoint for this metric set.
func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
