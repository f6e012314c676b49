// Package metrics exposes engine activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TransferCollector implements the transfer service's MetricsCollector
// on top of Prometheus.
type TransferCollector struct {
	runsStarted prometheus.Counter
	runOutcomes *prometheus.CounterVec
	runDuration prometheus.Histogram
	queueDepth  prometheus.Gauge
}

// NewTransferCollector registers the transfer metrics on the default
// registry and returns the collector.
func NewTransferCollector() *TransferCollector {
	return &TransferCollector{
		runsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payflow_transfer_runs_started_total",
			Help: "Number of transfer engine runs started.",
		}),
		runOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payflow_transfer_runs_total",
			Help: "Number of finished transfer engine runs by outcome.",
		}, []string{"outcome"}),
		runDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payflow_transfer_run_duration_seconds",
			Help:    "Wall-clock duration of transfer engine runs.",
			Buckets: prometheus.DefBuckets,
		}),
		queueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "payflow_transfer_queue_depth",
			Help: "Engine runs waiting in the worker pool queue.",
		}),
	}
}

func (c *TransferCollector) RecordRunStarted() {
	c.runsStarted.Inc()
}

func (c *TransferCollector) RecordRunOutcome(outcome string) {
	c.runOutcomes.WithLabelValues(outcome).Inc()
}

func (c *TransferCollector) RecordRunDuration(d time.Duration) {
	c.runDuration.Observe(d.Seconds())
}

func (c *TransferCollector) RecordQueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}
