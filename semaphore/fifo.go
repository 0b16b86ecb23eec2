package semaphore

import (
	"context"
	"fmt"
	"time"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/internal/locking"
	"github.com/notorious-go/monitors/internal/notify"
)

var _ monitors.Lock = (*FIFO)(nil)

// FIFO is a counting semaphore that grants permits in strict arrival order.
//
// A FIFO must be created with NewFIFO and must not be copied after first use.
type FIFO struct {
	mu    locking.Mutex
	value int
	// Blocked calls, oldest first. A non-empty queue closes the fast path.
	queue *notify.Queue
}

// NewFIFO returns a FIFO semaphore holding v permits.
func NewFIFO(v int) *FIFO {
	return &FIFO{
		value: v,
		queue: notify.NewQueue(),
	}
}

// Acquire blocks until every earlier caller has been served and a permit is
// available, then takes it.
func (s *FIFO) Acquire(ctx context.Context) error {
	_, err := s.acquire(ctx, time.Time{})
	return err
}

// Attempt is like Acquire but gives up after timeout, returning false without
// taking a permit. A caller that gives up leaves its place in line.
func (s *FIFO) Attempt(ctx context.Context, timeout time.Duration) (bool, error) {
	return s.acquire(ctx, time.Now().Add(timeout))
}

// acquire waits without a time limit when deadline is zero.
func (s *FIFO) acquire(ctx context.Context, deadline time.Time) (bool, error) {
	if err := monitors.Check(ctx); err != nil {
		return false, err
	}

	tok := notify.NewToken(nil)
	tok.Lock()

	s.mu.Lock()
	if s.value > 0 && s.queue.Len() == 0 {
		s.value--
		s.mu.Unlock()
		tok.Unlock()
		return true, nil
	}
	if !deadline.IsZero() && !time.Now().Before(deadline) {
		s.mu.Unlock()
		tok.Unlock()
		return false, nil
	}
	s.queue.Push(tok)
	s.mu.Unlock()

	var (
		granted bool
		err     error
	)
	if deadline.IsZero() {
		err = tok.Wait(ctx)
		granted = err == nil
	} else {
		granted, err = tok.WaitUntil(ctx, deadline)
	}
	// The token must be released before the shared state is locked again, or
	// we would hold them in the reverse order of a notifier.
	tok.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Remove(tok)
	if granted {
		// Only the head is ever notified and nobody can take a permit past a
		// queued token, so the permit we were woken for is still there.
		s.value--
	}
	// Whether we consumed a permit or left the line, the new head may be
	// entitled to one of the permits that are left.
	s.notifyHead()
	return granted, err
}

// Release returns one permit and wakes the oldest waiter.
func (s *FIFO) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value++
	s.notifyHead()
}

// ReleaseN returns n permits at once. The oldest waiter is woken, and each
// waiter passes the wakeup on to the next one while permits remain. A negative
// n is rejected with monitors.ErrInvalidArgument.
func (s *FIFO) ReleaseN(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: cannot release %d permits", monitors.ErrInvalidArgument, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.value += n
	s.notifyHead()
	return nil
}

// notifyHead wakes the oldest waiter, without removing it from the queue, if
// a permit is available. It must be called with s.mu held.
func (s *FIFO) notifyHead() {
	if s.value <= 0 {
		return
	}
	if head := s.queue.Front(); head != nil {
		head.Notify()
	}
}

// Value returns the current permit count. The result may be stale.
func (s *FIFO) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Waiting returns the number of blocked calls. The result may be stale.
func (s *FIFO) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// String returns "FIFO(<value>, waiting=<n>)".
func (s *FIFO) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("FIFO(%d, waiting=%d)", s.value, s.queue.Len())
}
