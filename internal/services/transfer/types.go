package transfer

import "time"

// Default engine settings. The delays model settlement latency; the
// success rate drives the simulated outcome draw.
const (
	DefaultSuccessRate   = 0.8
	DefaultSettleDelay   = 2 * time.Second
	DefaultClearingDelay = 3 * time.Second
	DefaultRefundDelay   = 2 * time.Second
	DefaultWorkers       = 8
	DefaultQueueSize     = 64
)

// Config controls the transfer engine.
type Config struct {
	// SuccessRate is the probability that a transfer settles
	// successfully, in [0, 1].
	SuccessRate float64

	// SettleDelay separates creation from the sender debit.
	SettleDelay time.Duration
	// ClearingDelay separates the sender debit from the outcome draw.
	ClearingDelay time.Duration
	// RefundDelay separates a failed outcome from the refund notice.
	RefundDelay time.Duration

	// RunTimeout bounds a single engine run. Zero means unbounded.
	RunTimeout time.Duration

	// Workers and QueueSize bound the background pool.
	Workers   int
	QueueSize int
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		SuccessRate:   DefaultSuccessRate,
		SettleDelay:   DefaultSettleDelay,
		ClearingDelay: DefaultClearingDelay,
		RefundDelay:   DefaultRefundDelay,
		Workers:       DefaultWorkers,
		QueueSize:     DefaultQueueSize,
	}
}

// failureReasons is the fixed set a failed transfer's reason is drawn
// from, uniformly.
var failureReasons = []string{
	"Network connectivity issues",
	"Insufficient funds",
	"Security verification failed",
	"System timeout",
}
