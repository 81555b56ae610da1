package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the worker-side prometheus collectors
type Metrics struct {
	OutboxProcessingLatency prometheus.Histogram
	OutboxEventsProcessed   *prometheus.CounterVec
	DatabaseOperations      *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	m := &Metrics{
		OutboxProcessingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outbox_processing_duration_seconds",
			Help:      "Time spent draining a batch of outbox events",
		}),
		OutboxEventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_total",
			Help:      "Outbox events processed by result",
		}, []string{"result"}),
		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Database operations by name and result",
		}, []string{"operation", "result"}),
	}

	prometheus.MustRegister(
		m.OutboxProcessingLatency,
		m.OutboxEventsProcessed,
		m.DatabaseOperations,
	)

	return m
}
