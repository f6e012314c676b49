package transfer

import (
	"context"
	"fmt"
	"log"
	"time"

	"payflow/internal/models"
	"payflow/internal/repositories"
)

// Engine advances a transfer through its lifecycle. Each transfer gets
// exactly one run; the run owns all mutations of its record and emits
// a notification at every step. Runs never surface errors: anything
// unexpected forces the transfer to failed and tells both parties.
type Engine struct {
	transfers repositories.TransferRepository
	users     UserDirectory
	notifier  Dispatcher
	clock     Clock
	rand      Rand
	metrics   MetricsCollector
	cfg       Config
}

// NewEngine creates a transfer engine.
func NewEngine(
	transfers repositories.TransferRepository,
	users UserDirectory,
	notifier Dispatcher,
	clock Clock,
	rand Rand,
	metrics MetricsCollector,
	cfg Config,
) *Engine {
	if transfers == nil {
		panic("transfer repository is required")
	}
	if users == nil {
		panic("user directory is required")
	}
	if notifier == nil {
		panic("notification dispatcher is required")
	}
	if clock == nil {
		clock = NewClock()
	}
	if rand == nil {
		rand = NewRand()
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &Engine{
		transfers: transfers,
		users:     users,
		notifier:  notifier,
		clock:     clock,
		rand:      rand,
		metrics:   metrics,
		cfg:       cfg,
	}
}

// Run executes the state machine for one transfer. It must be invoked
// at most once per transfer id; a second run while the first is active
// would double-apply transitions and double-send notifications.
func (e *Engine) Run(ctx context.Context, transferID uint) {
	if e.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.RunTimeout)
		defer cancel()
	}

	t, err := e.transfers.GetByID(transferID)
	if err != nil {
		log.Printf("Transfer run %d: record not loadable: %v", transferID, err)
		return
	}
	if t.Terminal() {
		log.Printf("Transfer run %d: already terminal (%s), skipping", t.ID, t.Status)
		return
	}

	e.metrics.RecordRunStarted()
	start := time.Now()

	if err := e.settle(ctx, t); err != nil {
		e.recoverFailure(ctx, t, err)
	}

	e.metrics.RecordRunDuration(time.Since(start))
}

// settle walks the forward path: initiated -> sent -> outcome draw.
func (e *Engine) settle(ctx context.Context, t *models.Transfer) error {
	sender, err := e.users.GetByID(t.SenderID)
	if err != nil {
		return fmt.Errorf("resolve sender %d: %w", t.SenderID, err)
	}
	receiver, err := e.users.GetByID(t.ReceiverID)
	if err != nil {
		return fmt.Errorf("resolve receiver %d: %w", t.ReceiverID, err)
	}

	e.notifier.Notify(ctx, t.SenderID, "Transaction Started",
		fmt.Sprintf("Processing transfer of $%.2f to %s", t.Amount, receiver.Email),
		models.SeverityInfo)
	e.notifier.Notify(ctx, t.ReceiverID, "Incoming Transfer",
		fmt.Sprintf("$%.2f transfer initiated from %s", t.Amount, sender.Email),
		models.SeverityInfo)

	if err := e.clock.Sleep(ctx, e.cfg.SettleDelay); err != nil {
		return err
	}

	if err := e.transfers.MarkSent(t.ID); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	e.notifier.Notify(ctx, t.SenderID, "Money Sent",
		fmt.Sprintf("$%.2f has been sent to %s", t.Amount, receiver.Email),
		models.SeverityWarning)

	if err := e.clock.Sleep(ctx, e.cfg.ClearingDelay); err != nil {
		return err
	}

	if e.rand.Float64() < e.cfg.SuccessRate {
		return e.complete(ctx, t, sender, receiver)
	}
	return e.fail(ctx, t, sender, receiver)
}

func (e *Engine) complete(ctx context.Context, t *models.Transfer, sender, receiver *models.User) error {
	if err := e.transfers.Complete(t.ID); err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	e.metrics.RecordRunOutcome(OutcomeCompleted)

	e.notifier.Notify(ctx, t.SenderID, "Transaction Successful",
		fmt.Sprintf("$%.2f was successfully transferred to %s", t.Amount, receiver.Email),
		models.SeveritySuccess)
	e.notifier.Notify(ctx, t.ReceiverID, "Money Received",
		fmt.Sprintf("$%.2f has been received from %s", t.Amount, sender.Email),
		models.SeveritySuccess)
	return nil
}

// fail handles the drawn-failure outcome. The sender view stays `sent`:
// from the sender's perspective the money already left the account; the
// refund arrives as a separate notification after the refund delay.
func (e *Engine) fail(ctx context.Context, t *models.Transfer, sender, receiver *models.User) error {
	if err := e.transfers.Fail(t.ID); err != nil {
		return fmt.Errorf("fail: %w", err)
	}
	e.metrics.RecordRunOutcome(OutcomeFailed)

	reason := failureReasons[e.rand.Intn(len(failureReasons))]

	e.notifier.Notify(ctx, t.SenderID, "Transaction Failed",
		fmt.Sprintf("Transfer of $%.2f to %s failed. Reason: %s. Your money will be refunded.",
			t.Amount, receiver.Email, reason),
		models.SeverityError)
	e.notifier.Notify(ctx, t.ReceiverID, "Transfer Failed",
		fmt.Sprintf("Incoming transfer of $%.2f from %s failed. Reason: %s.",
			t.Amount, sender.Email, reason),
		models.SeverityError)

	if err := e.clock.Sleep(ctx, e.cfg.RefundDelay); err != nil {
		return err
	}

	e.notifier.Notify(ctx, t.SenderID, "Refund Processed",
		fmt.Sprintf("$%.2f has been refunded to your account.", t.Amount),
		models.SeverityInfo)
	return nil
}

// recoverFailure contains any error raised mid-run: best-effort force
// to failed, then tell both parties. If the forced persist also fails
// the record keeps its last persisted state.
func (e *Engine) recoverFailure(ctx context.Context, t *models.Transfer, cause error) {
	log.Printf("Transfer run %d failed: %v", t.ID, cause)

	if err := e.transfers.Fail(t.ID); err != nil {
		log.Printf("Transfer run %d: could not persist failed state: %v", t.ID, err)
	}
	e.metrics.RecordRunOutcome(OutcomeErrored)

	const message = "An unexpected error occurred. Please try again later."
	e.notifier.Notify(ctx, t.SenderID, "System Error",
		message+" Your funds will be refunded.", models.SeverityError)
	e.notifier.Notify(ctx, t.ReceiverID, "System Error",
		message, models.SeverityError)
}
