// Package metrics exposes prometheus instrumentation for store and
// LLM operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	storeOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "memoflow",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Store operations by operation name and outcome.",
	}, []string{"op", "status"})

	llmRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "memoflow",
		Subsystem: "llm",
		Name:      "requests_total",
		Help:      "LLM completion requests by task kind and outcome.",
	}, []string{"kind", "status"})

	llmDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "memoflow",
		Subsystem: "llm",
		Name:      "request_duration_seconds",
		Help:      "LLM completion request latency.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"kind"})
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// CountStoreOp records one store operation outcome.
func CountStoreOp(op string, err error) {
	storeOps.WithLabelValues(op, status(err)).Inc()
}

// CountLLMRequest records one LLM completion outcome.
func CountLLMRequest(kind string, err error) {
	llmRequests.WithLabelValues(kind, status(err)).Inc()
}

// ObserveLLMDuration records the wall-clock latency of an LLM call.
func ObserveLLMDuration(kind string, d time.Duration) {
	llmDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
