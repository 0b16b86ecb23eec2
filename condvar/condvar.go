package condvar

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/monitor"
)

// Condition is the contract shared by CondVar and Latch.
type Condition interface {
	Fire()
	Reset()
	Await(ctx context.Context) error
	AwaitTimeout(ctx context.Context, timeout time.Duration) (bool, error)
	HasFired() bool
}

var (
	_ Condition = (*CondVar)(nil)
	_ Condition = (*Latch)(nil)
)

// A CondVar is a condition that goroutines await until it turns true.
//
// The zero CondVar is false and ready to use.
type CondVar struct {
	mon monitor.Monitor
	// Written under mon, read without it by HasFired.
	state atomic.Bool
}

// New returns a CondVar in the given initial state.
func New(state bool) *CondVar {
	c := new(CondVar)
	c.state.Store(state)
	return c
}

// Fire sets the condition to true and wakes every waiting goroutine.
func (c *CondVar) Fire() {
	c.mon.Lock()
	defer c.mon.Unlock()
	c.state.Store(true)
	c.mon.Broadcast()
}

// Reset sets the condition to false. No goroutine is woken.
func (c *CondVar) Reset() {
	c.mon.Lock()
	defer c.mon.Unlock()
	c.state.Store(false)
}

// Await blocks until the condition is true or ctx is done. It returns
// immediately if the condition is already true.
//
// Interruption leaves the condition unchanged.
func (c *CondVar) Await(ctx context.Context) error {
	if err := monitors.Check(ctx); err != nil {
		return err
	}
	if c.state.Load() {
		return nil
	}

	c.mon.Lock()
	defer c.mon.Unlock()
	for !c.state.Load() {
		if err := c.mon.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AwaitTimeout is like Await but gives up after timeout. It reports whether the
// condition turned true within the budget.
func (c *CondVar) AwaitTimeout(ctx context.Context, timeout time.Duration) (bool, error) {
	if err := monitors.Check(ctx); err != nil {
		return false, err
	}
	if c.state.Load() {
		return true, nil
	}

	deadline := time.Now().Add(timeout)

	c.mon.Lock()
	defer c.mon.Unlock()
	for !c.state.Load() {
		if !time.Now().Before(deadline) {
			return false, nil
		}
		if err := c.mon.WaitUntil(ctx, deadline); err != nil {
			return false, err
		}
	}
	return true, nil
}

// HasFired reports whether the condition is true. The result is a lock-free
// snapshot and may be stale by the time it is used.
func (c *CondVar) HasFired() bool {
	return c.state.Load()
}
