package jobs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "studysync"

var (
	jobRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "job",
		Name:      "runs_total",
		Help:      "Background job runs by outcome",
	}, []string{"job", "outcome"})

	jobDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "job",
		Name:      "duration_seconds",
		Help:      "Background job duration",
		Buckets:   []float64{.01, .05, .1, .5, 1, 5, 15, 30},
	}, []string{"job"})

	jobLastSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "job",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run",
	}, []string{"job"})

	digestsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "digest",
		Name:      "sent_total",
		Help:      "Deadline digests delivered to Telegram",
	})
)

func init() {
	prometheus.MustRegister(jobRuns, jobDuration, jobLastSuccess, digestsSent)
}

// observe: outcome ok | error | panic.
func observe(name, outcome string, start time.Time) {
	jobRuns.WithLabelValues(name, outcome).Inc()
	jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if outcome == "ok" {
		jobLastSuccess.WithLabelValues(name).SetToCurrentTime()
	}
}
