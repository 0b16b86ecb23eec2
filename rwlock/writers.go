package rwlock

import (
	"context"
	"fmt"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/internal/notify"
	"github.com/notorious-go/monitors/monitor"
)

var _ monitors.RWLock = (*WritersPreferred)(nil)

// WritersPreferred is a reader/writer lock that blocks new readers while a
// writer is active or queued, and hands the lock to writers in arrival order.
//
// A WritersPreferred must be created with NewWritersPreferred.
type WritersPreferred struct {
	// Readers wait on mon itself; writers wait on their own tokens.
	mon     monitor.Monitor
	readers int
	active  *notify.Token
	writers *notify.Queue
}

// NewWritersPreferred returns an unlocked WritersPreferred lock.
func NewWritersPreferred() *WritersPreferred {
	return &WritersPreferred{writers: notify.NewQueue()}
}

// AcquireRead blocks while a writer is active or waiting.
func (l *WritersPreferred) AcquireRead(ctx context.Context) error {
	if err := monitors.Check(ctx); err != nil {
		return err
	}

	l.mon.Lock()
	defer l.mon.Unlock()
	for !l.safeToRead() {
		if err := l.mon.Wait(ctx); err != nil {
			return err
		}
	}
	l.readers++
	return nil
}

// AcquireWrite takes the fast path when the lock is free and no writer is
// queued. Otherwise c queues behind the earlier writers and blocks until a
// release hands it the lock.
//
// A writer interrupted while queued leaves the queue. If the lock was handed
// to it at the moment of the interruption, it passes the lock on.
func (l *WritersPreferred) AcquireWrite(ctx context.Context, c *monitors.Caller) error {
	if c == nil {
		return fmt.Errorf("%w: nil writer", monitors.ErrInvalidArgument)
	}
	if err := monitors.Check(ctx); err != nil {
		return err
	}

	// The token is locked before the shared state is released below, so a
	// release that picks it in between cannot go unnoticed.
	tok := notify.NewToken(c)
	tok.Lock()

	l.mon.Lock()
	if l.safeToWrite() && l.writers.Len() == 0 {
		l.active = tok
		l.mon.Unlock()
		tok.Unlock()
		return nil
	}
	l.writers.Push(tok)
	l.mon.Unlock()

	err := tok.Wait(ctx)
	tok.Unlock()
	if err == nil {
		// notifyNext made us the active writer before waking us.
		return nil
	}

	l.mon.Lock()
	defer l.mon.Unlock()
	if l.writers.Remove(tok) {
		if l.active == nil {
			if l.readers == 0 {
				l.notifyNext()
			} else if l.writers.Len() == 0 {
				// Readers held back by our intent may proceed.
				l.mon.Broadcast()
			}
		}
		return err
	}
	if l.active == tok {
		l.active = nil
		l.notifyNext()
	}
	return err
}

// Release ends a read section, or the write section of c. The last reader out,
// or the writer, hands the lock to the oldest queued writer if there is one and
// to all waiting readers otherwise. Releasing an unlocked lock does nothing.
func (l *WritersPreferred) Release(c *monitors.Caller) error {
	l.mon.Lock()
	defer l.mon.Unlock()

	switch {
	case l.readers > 0:
		l.readers--
		if l.readers == 0 {
			l.notifyNext()
		}
	case l.active != nil:
		if l.active.Caller() != c {
			return fmt.Errorf("%w: %v released a write lock held by %v", monitors.ErrNotOwner, c, l.active.Caller())
		}
		l.active = nil
		l.notifyNext()
	}
	return nil
}

// notifyNext must be called with mon held and the lock free.
func (l *WritersPreferred) notifyNext() {
	if next := l.writers.PopFront(); next != nil {
		l.active = next
		next.Notify()
		return
	}
	l.mon.Broadcast()
}

func (l *WritersPreferred) safeToRead() bool {
	return l.active == nil && l.writers.Len() == 0
}

func (l *WritersPreferred) safeToWrite() bool {
	return l.active == nil && l.readers == 0
}

// Readers returns the number of active readers. The result may be stale.
func (l *WritersPreferred) Readers() int {
	l.mon.Lock()
	defer l.mon.Unlock()
	return l.readers
}

// Writer returns the active writer, or nil. The result may be stale.
func (l *WritersPreferred) Writer() *monitors.Caller {
	l.mon.Lock()
	defer l.mon.Unlock()
	if l.active == nil {
		return nil
	}
	return l.active.Caller()
}

// Writing reports whether a writer is active. The result may be stale.
func (l *WritersPreferred) Writing() bool {
	return l.Writer() != nil
}

// WaitingWriters returns the number of queued writers. The result may be
// stale.
func (l *WritersPreferred) WaitingWriters() int {
	l.mon.Lock()
	defer l.mon.Unlock()
	return l.writers.Len()
}
