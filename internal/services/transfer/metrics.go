package transfer

import "time"

// MetricsCollector records engine activity.
type MetricsCollector interface {
	RecordRunStarted()
	RecordRunOutcome(outcome string)
	RecordRunDuration(d time.Duration)
	RecordQueueDepth(depth int)
}

// Run outcomes reported to the collector.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeErrored   = "errored"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordRunStarted()                  {}
func (n *NoopMetricsCollector) RecordRunOutcome(string)            {}
func (n *NoopMetricsCollector) RecordRunDuration(time.Duration)    {}
func (n *NoopMetricsCollector) RecordQueueDepth(int)               {}
