package transfer

import (
	"context"
	"math/rand"
	"time"
)

// Clock abstracts the engine's delay points so tests can run the full
// state machine without wall-clock waiting.
type Clock interface {
	// Sleep waits for d or until ctx is done, whichever comes first.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// NewClock returns a timer-backed Clock.
func NewClock() Clock { return realClock{} }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Rand is the source of the engine's outcome and failure-reason draws.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

type systemRand struct{}

// NewRand returns a Rand backed by the shared math/rand source.
func NewRand() Rand { return systemRand{} }

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) Intn(n int) int   { return rand.Intn(n) }
