// Package monitor provides the blocking foundation of every primitive in this
// module: an exclusive lock combined with a condition on which goroutines wait
// and are woken by others holding the lock.
//
// Unlike sync.Cond, a wait can be abandoned by cancelling a context or by
// passing a deadline, which is what makes the primitives built on it
// interruptible.
//
// # Usage
//
// Waiters must re-evaluate their guard in a loop. A wakeup only means the state
// may have changed, not that the guard holds:
//
//	m.Lock()
//	defer m.Unlock()
//	for !ready {
//	    if err := m.Wait(ctx); err != nil {
//	        return err
//	    }
//	}
//
// Timed waits re-measure the remaining budget after every wakeup:
//
//	deadline := time.Now().Add(timeout)
//	for !ready {
//	    if !time.Now().Before(deadline) {
//	        return false, nil
//	    }
//	    if err := m.WaitUntil(ctx, deadline); err != nil {
//	        return false, err
//	    }
//	}
package monitor

import (
	"container/list"
	"context"
	"time"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/internal/locking"
)

// A Monitor is an exclusive lock with an associated wait queue.
//
// Wait, WaitUntil, Signal and Broadcast must only be called while holding the
// lock.
//
// The zero Monitor is unlocked and ready to use. A Monitor must not be copied
// after first use.
type Monitor struct {
	mu locking.Mutex
	// Waiters in arrival order. Each element is a *waiter.
	waiters list.List
}

type waiter struct {
	ready chan struct{}
	// Position in the wait queue, nil once the waiter has been woken or has
	// left the queue.
	elem *list.Element
}

// Lock acquires the monitor, blocking until it is available.
func (m *Monitor) Lock() {
	m.mu.Lock()
}

// Unlock releases the monitor.
func (m *Monitor) Unlock() {
	m.mu.Unlock()
}

// Wait atomically releases the monitor and suspends the calling goroutine until
// it is woken by Signal or Broadcast, or until ctx is done. The monitor is
// re-acquired before Wait returns, in every case.
//
// The returned error is non-nil only when ctx is done, and then matches
// monitors.ErrInterrupted.
func (m *Monitor) Wait(ctx context.Context) error {
	return m.wait(ctx, nil)
}

// WaitUntil is like Wait but also returns, with a nil error, once deadline has
// passed. Callers tell the difference by re-checking their guard and the clock.
func (m *Monitor) WaitUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return monitors.Check(ctx)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	return m.wait(ctx, timer.C)
}

func (m *Monitor) wait(ctx context.Context, expired <-chan time.Time) error {
	if err := monitors.Check(ctx); err != nil {
		return err
	}

	w := &waiter{ready: make(chan struct{})}
	w.elem = m.waiters.PushBack(w)
	m.mu.Unlock()

	var err error
	select {
	case <-w.ready:
	case <-expired:
	case <-ctx.Done():
		err = monitors.Interrupted(ctx)
	}

	m.mu.Lock()
	if w.elem != nil {
		// Nobody woke us up, so leave the queue.
		m.waiters.Remove(w.elem)
		w.elem = nil
	} else if err != nil {
		// We were woken and interrupted at the same time. A Signal meant for one
		// waiter must not be swallowed, so pass it on.
		m.signal()
	}
	return err
}

// Signal wakes the goroutine that has been waiting the longest, if any.
func (m *Monitor) Signal() {
	m.signal()
}

func (m *Monitor) signal() {
	front := m.waiters.Front()
	if front == nil {
		return
	}
	m.wake(front)
}

// Broadcast wakes all waiting goroutines.
func (m *Monitor) Broadcast() {
	for e := m.waiters.Front(); e != nil; e = m.waiters.Front() {
		m.wake(e)
	}
}

func (m *Monitor) wake(e *list.Element) {
	w := m.waiters.Remove(e).(*waiter)
	w.elem = nil
	close(w.ready)
}

// Waiters returns the number of goroutines currently blocked in Wait or
// WaitUntil. It must be called while holding the lock.
func (m *Monitor) Waiters() int {
	return m.waiters.Len()
}
