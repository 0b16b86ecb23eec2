package mutex

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/monitor"
)

// A Mutex is a reentrant mutual exclusion lock.
//
// The zero Mutex is unowned and ready to use. A Mutex must not be copied after
// first use.
type Mutex struct {
	mon monitor.Monitor

	// Both fields are written under mon. They are atomics only so that Owner
	// and Count can be read without it.
	owner atomic.Pointer[monitors.Caller]
	count atomic.Int64
}

// New returns an unowned Mutex.
func New() *Mutex {
	return new(Mutex)
}

// Acquire blocks until the Mutex is unowned or owned by c, then records c as
// the owner and increments the recursion count.
//
// A nil Caller is rejected with monitors.ErrInvalidArgument. If ctx is done
// before the Mutex is granted, nothing changes and the error matches
// monitors.ErrInterrupted.
func (m *Mutex) Acquire(ctx context.Context, c *monitors.Caller) error {
	if c == nil {
		return fmt.Errorf("%w: nil caller", monitors.ErrInvalidArgument)
	}
	if err := monitors.Check(ctx); err != nil {
		return err
	}

	m.mon.Lock()
	defer m.mon.Unlock()
	for !m.available(c) {
		if err := m.mon.Wait(ctx); err != nil {
			return err
		}
	}
	m.grant(c)
	return nil
}

// Attempt is like Acquire but gives up after timeout, returning false. It
// succeeds at once if the Mutex is unowned or already owned by c.
func (m *Mutex) Attempt(ctx context.Context, c *monitors.Caller, timeout time.Duration) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("%w: nil caller", monitors.ErrInvalidArgument)
	}
	if err := monitors.Check(ctx); err != nil {
		return false, err
	}

	deadline := time.Now().Add(timeout)

	m.mon.Lock()
	defer m.mon.Unlock()
	for !m.available(c) {
		if !time.Now().Before(deadline) {
			return false, nil
		}
		if err := m.mon.WaitUntil(ctx, deadline); err != nil {
			return false, err
		}
	}
	m.grant(c)
	return true, nil
}

func (m *Mutex) available(c *monitors.Caller) bool {
	owner := m.owner.Load()
	return owner == nil || owner == c
}

func (m *Mutex) grant(c *monitors.Caller) {
	m.owner.Store(c)
	m.count.Add(1)
}

// Release decrements the recursion count. When it reaches zero the Mutex
// becomes unowned and all waiters are woken.
//
// Releasing a Mutex that c does not own fails with monitors.ErrNotOwner and
// leaves the Mutex untouched.
func (m *Mutex) Release(c *monitors.Caller) error {
	m.mon.Lock()
	defer m.mon.Unlock()

	if owner := m.owner.Load(); owner == nil || owner != c {
		return fmt.Errorf("%w: %v released a mutex owned by %v", monitors.ErrNotOwner, c, owner)
	}
	if m.count.Add(-1) == 0 {
		m.owner.Store(nil)
		m.mon.Broadcast()
	}
	return nil
}

// Owner returns the current owner, or nil if the Mutex is unowned. The result
// may be stale.
func (m *Mutex) Owner() *monitors.Caller {
	return m.owner.Load()
}

// Count returns the current recursion depth. The result may be stale.
func (m *Mutex) Count() int {
	return int(m.count.Load())
}

// String returns "Mutex(owner=<name>, count=<n>)".
func (m *Mutex) String() string {
	return fmt.Sprintf("Mutex(owner=%v, count=%d)", m.Owner(), m.Count())
}
