package transfer

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"payflow/internal/models"
	"payflow/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventLog records status writes and notifications in emission order so
// tests can assert the exact walk through the state machine.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

// memTransferStore is an in-memory TransferRepository with the same
// terminal-state guard as the Postgres implementation.
type memTransferStore struct {
	mu     sync.Mutex
	byID   map[uint]*models.Transfer
	nextID uint
	log    *eventLog

	failMarkSent bool
	failComplete bool
	failFail     bool
}

func newMemTransferStore(log *eventLog) *memTransferStore {
	return &memTransferStore{byID: map[uint]*models.Transfer{}, log: log}
}

func (s *memTransferStore) Create(t *models.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = time.Now()
	cp := *t
	s.byID[t.ID] = &cp
	return nil
}

func (s *memTransferStore) GetByID(id uint) (*models.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok {
		return nil, repositories.ErrTransferNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *memTransferStore) ListByParticipant(userID uint) ([]models.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transfer
	for _, t := range s.byID {
		if t.SenderID == userID || t.ReceiverID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *memTransferStore) MarkSent(id uint) error {
	if s.failMarkSent {
		return repositories.ErrDatabaseOperation
	}
	return s.update(id, "sent", func(t *models.Transfer) {
		t.SenderStatus = models.SenderStatusSent
	})
}

func (s *memTransferStore) Complete(id uint) error {
	if s.failComplete {
		return repositories.ErrDatabaseOperation
	}
	return s.update(id, "completed", func(t *models.Transfer) {
		t.Status = models.TransferStatusCompleted
		t.ReceiverStatus = models.ReceiverStatusReceived
	})
}

func (s *memTransferStore) Fail(id uint) error {
	if s.failFail {
		return repositories.ErrDatabaseOperation
	}
	return s.update(id, "failed", func(t *models.Transfer) {
		t.Status = models.TransferStatusFailed
		t.ReceiverStatus = models.ReceiverStatusFailed
	})
}

func (s *memTransferStore) update(id uint, event string, apply func(*models.Transfer)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok || t.Terminal() {
		return repositories.ErrTransferNotFound
	}
	apply(t)
	if s.log != nil {
		s.log.add("status:%s", event)
	}
	return nil
}

type memUsers map[uint]*models.User

func (m memUsers) GetByID(id uint) (*models.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

// recordingDispatcher captures notifications per user and mirrors them
// into the shared event log.
type recordingDispatcher struct {
	mu     sync.Mutex
	byUser map[uint][]models.Notification
	log    *eventLog
}

func newRecordingDispatcher(log *eventLog) *recordingDispatcher {
	return &recordingDispatcher{byUser: map[uint][]models.Notification{}, log: log}
}

func (d *recordingDispatcher) Notify(ctx context.Context, userID uint, title, message, severity string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byUser[userID] = append(d.byUser[userID], models.Notification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Severity: severity,
	})
	if d.log != nil {
		d.log.add("notify:%d:%s", userID, title)
	}
}

func (d *recordingDispatcher) titles(userID uint) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, n := range d.byUser[userID] {
		out = append(out, n.Title)
	}
	return out
}

func (d *recordingDispatcher) total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, list := range d.byUser {
		n += len(list)
	}
	return n
}

// fakeClock records requested delays and returns immediately.
type fakeClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (f *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	f.mu.Lock()
	f.sleeps = append(f.sleeps, d)
	f.mu.Unlock()
	return ctx.Err()
}

// scriptedRand plays back fixed draws.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

type engineFixture struct {
	log      *eventLog
	store    *memTransferStore
	users    memUsers
	notifier *recordingDispatcher
	clock    *fakeClock
	rand     *scriptedRand
	engine   *Engine
}

func newEngineFixture(t *testing.T, rand *scriptedRand) *engineFixture {
	t.Helper()
	log := &eventLog{}
	f := &engineFixture{
		log:   log,
		store: newMemTransferStore(log),
		users: memUsers{
			1: {Email: "alice@example.com"},
			2: {Email: "bob@example.com"},
		},
		notifier: newRecordingDispatcher(log),
		clock:    &fakeClock{},
		rand:     rand,
	}
	f.users[1].ID = 1
	f.users[2].ID = 2
	f.engine = NewEngine(f.store, f.users, f.notifier, f.clock, f.rand, nil, DefaultConfig())
	return f
}

func (f *engineFixture) createPending(t *testing.T, amount float64) *models.Transfer {
	t.Helper()
	tr := &models.Transfer{
		Reference:      "ref-test",
		Amount:         amount,
		SenderID:       1,
		ReceiverID:     2,
		Status:         models.TransferStatusPending,
		SenderStatus:   models.SenderStatusPending,
		ReceiverStatus: models.ReceiverStatusPending,
	}
	require.NoError(t, f.store.Create(tr))
	return tr
}

func TestEngine_SuccessPath(t *testing.T) {
	f := newEngineFixture(t, &scriptedRand{floats: []float64{0.0}})
	tr := f.createPending(t, 50.00)

	f.engine.Run(context.Background(), tr.ID)

	final, err := f.store.GetByID(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusCompleted, final.Status)
	assert.Equal(t, models.SenderStatusSent, final.SenderStatus)
	assert.Equal(t, models.ReceiverStatusReceived, final.ReceiverStatus)

	assert.Equal(t, []string{"Transaction Started", "Money Sent", "Transaction Successful"}, f.notifier.titles(1))
	assert.Equal(t, []string{"Incoming Transfer", "Money Received"}, f.notifier.titles(2))

	// Status writes and notifications in the exact lifecycle order,
	// with no step skipped or repeated.
	assert.Equal(t, []string{
		"notify:1:Transaction Started",
		"notify:2:Incoming Transfer",
		"status:sent",
		"notify:1:Money Sent",
		"status:completed",
		"notify:1:Transaction Successful",
		"notify:2:Money Received",
	}, f.log.all())

	assert.Equal(t, []time.Duration{DefaultSettleDelay, DefaultClearingDelay}, f.clock.sleeps)
}

func TestEngine_FailurePath(t *testing.T) {
	f := newEngineFixture(t, &scriptedRand{floats: []float64{0.95}, ints: []int{1}})
	tr := f.createPending(t, 25.00)

	f.engine.Run(context.Background(), tr.ID)

	final, err := f.store.GetByID(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusFailed, final.Status)
	// The sender view stays sent on a drawn failure: the money left
	// the account and comes back as a refund.
	assert.Equal(t, models.SenderStatusSent, final.SenderStatus)
	assert.Equal(t, models.ReceiverStatusFailed, final.ReceiverStatus)

	assert.Equal(t, []string{"Transaction Started", "Money Sent", "Transaction Failed", "Refund Processed"}, f.notifier.titles(1))
	assert.Equal(t, []string{"Incoming Transfer", "Transfer Failed"}, f.notifier.titles(2))

	senderFailure := f.notifier.byUser[1][2]
	assert.Contains(t, senderFailure.Message, "Insufficient funds")
	assert.Contains(t, senderFailure.Message, "Your money will be refunded")
	receiverFailure := f.notifier.byUser[2][1]
	assert.Contains(t, receiverFailure.Message, "Insufficient funds")

	// Refund notice only lands after the refund delay.
	assert.Equal(t, []time.Duration{DefaultSettleDelay, DefaultClearingDelay, DefaultRefundDelay}, f.clock.sleeps)
}

func TestEngine_OutcomeDrawHonorsSuccessRate(t *testing.T) {
	tests := []struct {
		name       string
		draw       float64
		wantStatus string
	}{
		{"draw below rate succeeds", 0.79, models.TransferStatusCompleted},
		{"draw at rate fails", 0.80, models.TransferStatusFailed},
		{"draw above rate fails", 0.99, models.TransferStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t, &scriptedRand{floats: []float64{tt.draw}})
			tr := f.createPending(t, 10.00)

			f.engine.Run(context.Background(), tr.ID)

			final, err := f.store.GetByID(tr.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, final.Status)
		})
	}
}

func TestEngine_UnexpectedErrorForcesFailed(t *testing.T) {
	f := newEngineFixture(t, &scriptedRand{})
	f.store.failMarkSent = true
	tr := f.createPending(t, 75.00)

	f.engine.Run(context.Background(), tr.ID)

	final, err := f.store.GetByID(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusFailed, final.Status)
	assert.Equal(t, models.ReceiverStatusFailed, final.ReceiverStatus)

	assert.Equal(t, []string{"Transaction Started", "System Error"}, f.notifier.titles(1))
	assert.Equal(t, []string{"Incoming Transfer", "System Error"}, f.notifier.titles(2))

	senderError := f.notifier.byUser[1][1]
	assert.Contains(t, senderError.Message, "Your funds will be refunded")
	// No refund notification on the error path, unlike a drawn failure.
	assert.NotContains(t, f.notifier.titles(1), "Refund Processed")
}

func TestEngine_UnresolvableSenderForcesFailed(t *testing.T) {
	f := newEngineFixture(t, &scriptedRand{})
	delete(f.users, 1)
	tr := f.createPending(t, 30.00)

	f.engine.Run(context.Background(), tr.ID)

	final, err := f.store.GetByID(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferStatusFailed, final.Status)
	assert.Equal(t, []string{"System Error"}, f.notifier.titles(1))
	assert.Equal(t, []string{"System Error"}, f.notifier.titles(2))
}

func TestEngine_TerminalRecordsAreNeverMutated(t *testing.T) {
	f := newEngineFixture(t, &scriptedRand{floats: []float64{0.0, 0.99}})
	tr := f.createPending(t, 40.00)

	f.engine.Run(context.Background(), tr.ID)
	afterFirst, err := f.store.GetByID(tr.ID)
	require.NoError(t, err)
	require.Equal(t, models.TransferStatusCompleted, afterFirst.Status)

	eventsAfterFirst := len(f.log.all())
	notificationsAfterFirst := f.notifier.total()

	// A duplicate invocation on a terminal record is a no-op.
	f.engine.Run(context.Background(), tr.ID)

	afterSecond, err := f.store.GetByID(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, afterFirst, afterSecond)
	assert.Len(t, f.log.all(), eventsAfterFirst)
	assert.Equal(t, notificationsAfterFirst, f.notifier.total())
}

func TestEngine_EveryTerminalRunNotifiesBothParties(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*engineFixture)
	}{
		{"success", func(f *engineFixture) { f.rand.floats = []float64{0.0} }},
		{"drawn failure", func(f *engineFixture) { f.rand.floats = []float64{0.99} }},
		{"unexpected error", func(f *engineFixture) { f.store.failComplete = true; f.store.failMarkSent = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t, &scriptedRand{})
			tt.setup(f)
			tr := f.createPending(t, 15.00)

			f.engine.Run(context.Background(), tr.ID)

			assert.NotEmpty(t, f.notifier.titles(1), "sender must always be notified")
			assert.NotEmpty(t, f.notifier.titles(2), "receiver must always be notified")
			assert.GreaterOrEqual(t, f.notifier.total(), 2)
		})
	}
}

func TestEngine_MissingRecordIsIgnored(t *testing.T) {
	f := newEngineFixture(t, &scriptedRand{})

	f.engine.Run(context.Background(), 999)

	assert.Empty(t, f.log.all())
	assert.Zero(t, f.notifier.total())
}
