// Package notify implements the "specific notification" pattern: every blocked
// call waits on a private Token instead of the primitive's shared monitor, so
// the primitive can wake exactly the waiter it chooses.
//
// A Token is locked before the shared state is unlocked, and the shared state
// is locked before a Token is notified. Together with the Token's signalled
// flag this closes the window in which a waiter has queued its Token but has
// not started waiting yet: a notification sent in that window is recorded and
// observed as soon as the waiter calls Wait.
//
//	tok := notify.NewToken(caller)
//	tok.Lock()
//	shared.Lock()
//	// ... fast path, or queue.Push(tok)
//	shared.Unlock()
//	err := tok.Wait(ctx)
//	tok.Unlock()
//	shared.Lock() // re-examine the shared state
//
// A woken waiter must release its Token before locking the shared state again,
// otherwise it would hold the two locks in the reverse order of a notifier.
package notify

import (
	"context"
	"time"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/monitor"
)

// A Token is a private single-slot wakeup signal owned by one blocked call.
type Token struct {
	mon      monitor.Monitor
	signaled bool
	caller   *monitors.Caller
}

// NewToken returns an unsignalled Token on behalf of c, which may be nil for
// anonymous waiters.
func NewToken(c *monitors.Caller) *Token {
	return &Token{caller: c}
}

// Caller returns the Caller the Token was created for.
func (t *Token) Caller() *monitors.Caller {
	return t.caller
}

func (t *Token) Lock() {
	t.mon.Lock()
}

func (t *Token) Unlock() {
	t.mon.Unlock()
}

// Wait blocks until the Token is notified or ctx is done. It must be called
// with the Token locked and returns with it locked.
func (t *Token) Wait(ctx context.Context) error {
	for !t.signaled {
		if err := t.mon.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// WaitUntil is like Wait but gives up at deadline. It reports whether the Token
// was notified.
func (t *Token) WaitUntil(ctx context.Context, deadline time.Time) (bool, error) {
	for !t.signaled {
		if !time.Now().Before(deadline) {
			return false, nil
		}
		if err := t.mon.WaitUntil(ctx, deadline); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Notify signals the Token. A notification is never lost: if the owner has not
// started waiting yet, its next Wait returns immediately. Notifying twice is the
// same as notifying once.
func (t *Token) Notify() {
	t.mon.Lock()
	defer t.mon.Unlock()
	t.signaled = true
	t.mon.Signal()
}

// Notified reports whether Notify has been called.
func (t *Token) Notified() bool {
	t.mon.Lock()
	defer t.mon.Unlock()
	return t.signaled
}
