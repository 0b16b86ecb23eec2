package condvar

import (
	"context"
	"time"
)

// A Latch is a CondVar that cannot be reset: once fired, it is fired forever.
//
// The zero Latch is unfired and ready to use.
type Latch struct {
	cond CondVar
}

// NewLatch returns an unfired Latch.
func NewLatch() *Latch {
	return new(Latch)
}

// Fire releases every current and future waiter. Firing an already fired Latch
// does nothing.
func (l *Latch) Fire() {
	l.cond.Fire()
}

// Reset does nothing; a Latch cannot be reset.
func (l *Latch) Reset() {}

func (l *Latch) Await(ctx context.Context) error {
	return l.cond.Await(ctx)
}

func (l *Latch) AwaitTimeout(ctx context.Context, timeout time.Duration) (bool, error) {
	return l.cond.AwaitTimeout(ctx, timeout)
}

func (l *Latch) HasFired() bool {
	return l.cond.HasFired()
}
