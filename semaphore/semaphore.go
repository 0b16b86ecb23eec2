package semaphore

import (
	"context"
	"fmt"
	"time"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/monitor"
)

var _ monitors.Lock = (*Semaphore)(nil)

// Semaphore is a counting semaphore without any fairness guarantee.
//
// The zero Semaphore holds no permits. A Semaphore must not be copied after
// first use.
type Semaphore struct {
	mon   monitor.Monitor
	value int
}

// New returns a Semaphore holding v permits. A negative v means that many
// Releases are owed before the first Acquire can pass.
func New(v int) *Semaphore {
	return &Semaphore{value: v}
}

// Acquire blocks until a permit is available, then takes it.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if err := monitors.Check(ctx); err != nil {
		return err
	}

	s.mon.Lock()
	defer s.mon.Unlock()
	for s.value <= 0 {
		if err := s.mon.Wait(ctx); err != nil {
			return err
		}
	}
	s.value--
	return nil
}

// Attempt is like Acquire but gives up after timeout, returning false without
// taking a permit.
func (s *Semaphore) Attempt(ctx context.Context, timeout time.Duration) (bool, error) {
	if err := monitors.Check(ctx); err != nil {
		return false, err
	}

	deadline := time.Now().Add(timeout)

	s.mon.Lock()
	defer s.mon.Unlock()
	for s.value <= 0 {
		if !time.Now().Before(deadline) {
			return false, nil
		}
		if err := s.mon.WaitUntil(ctx, deadline); err != nil {
			return false, err
		}
	}
	s.value--
	return true, nil
}

// Release returns one permit and wakes a single waiter.
//
// One wakeup per permit is enough: every successful Acquire takes exactly one
// permit and re-checks the count in a loop, so a waiter woken for nothing
// simply waits again.
func (s *Semaphore) Release() {
	s.mon.Lock()
	defer s.mon.Unlock()
	s.value++
	if s.value > 0 {
		s.mon.Signal()
	}
}

// ReleaseN returns n permits at once and wakes up to n waiters. A negative n is
// rejected with monitors.ErrInvalidArgument.
func (s *Semaphore) ReleaseN(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: cannot release %d permits", monitors.ErrInvalidArgument, n)
	}

	s.mon.Lock()
	defer s.mon.Unlock()
	s.value += n
	for i := 0; i < min(n, s.value) && s.mon.Waiters() > 0; i++ {
		s.mon.Signal()
	}
	return nil
}

// Value returns the current permit count. The result may be stale.
func (s *Semaphore) Value() int {
	s.mon.Lock()
	defer s.mon.Unlock()
	return s.value
}

// String returns "Semaphore(<value>)".
func (s *Semaphore) String() string {
	return fmt.Sprintf("Semaphore(%d)", s.Value())
}
