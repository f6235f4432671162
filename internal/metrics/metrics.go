package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "studysync"

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "route", "code"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "handler_errors_total", Help: "Handler errors (5xx)",
	})

	RecordOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "record_ops_total", Help: "Record service calls",
	}, []string{"collection", "op", "outcome"})
	RecordDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "record_op_seconds", Help: "Record service call latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "op"})

	BackendPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "backend_ping_seconds", Help: "Record backend ping latency",
		Buckets: prometheus.DefBuckets,
	})

	OverdueAssignments = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "assignments_overdue", Help: "Overdue assignments at last digest",
	})
	DueSoonAssignments = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "assignments_due_soon", Help: "Assignments due soon at last digest",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequests, HTTPDuration, HandlerErrors,
		RecordOps, RecordDuration, BackendPing,
		OverdueAssignments, DueSoonAssignments,
	)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveBackendPing(d time.Duration) { BackendPing.Observe(d.Seconds()) }

// ObserveRecordOp — outcome: ok | failed (ответ success=false) | error (транспорт).
func ObserveRecordOp(collection, op, outcome string, d time.Duration) {
	RecordOps.WithLabelValues(collection, op, outcome).Inc()
	RecordDuration.WithLabelValues(collection, op).Observe(d.Seconds())
}
