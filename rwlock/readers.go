package rwlock

import (
	"context"
	"fmt"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/monitor"
)

var _ monitors.RWLock = (*ReadersPreferred)(nil)

// ReadersPreferred is a reader/writer lock that admits readers whenever no
// writer is active.
//
// The zero ReadersPreferred is unlocked and ready to use.
type ReadersPreferred struct {
	mon     monitor.Monitor
	readers int
	writer  *monitors.Caller
}

// AcquireRead blocks while a writer is active.
func (l *ReadersPreferred) AcquireRead(ctx context.Context) error {
	if err := monitors.Check(ctx); err != nil {
		return err
	}

	l.mon.Lock()
	defer l.mon.Unlock()
	for l.writer != nil {
		if err := l.mon.Wait(ctx); err != nil {
			return err
		}
	}
	l.readers++
	return nil
}

// AcquireWrite blocks while a writer is active or any reader holds the lock.
func (l *ReadersPreferred) AcquireWrite(ctx context.Context, c *monitors.Caller) error {
	if c == nil {
		return fmt.Errorf("%w: nil writer", monitors.ErrInvalidArgument)
	}
	if err := monitors.Check(ctx); err != nil {
		return err
	}

	l.mon.Lock()
	defer l.mon.Unlock()
	for l.writer != nil || l.readers > 0 {
		if err := l.mon.Wait(ctx); err != nil {
			return err
		}
	}
	l.writer = c
	return nil
}

// Release ends the write section of c, waking everyone, or one read section,
// waking a single waiter when the last reader leaves. Releasing an unlocked
// lock does nothing.
func (l *ReadersPreferred) Release(c *monitors.Caller) error {
	l.mon.Lock()
	defer l.mon.Unlock()

	switch {
	case l.writer != nil:
		if l.writer != c {
			return fmt.Errorf("%w: %v released a write lock held by %v", monitors.ErrNotOwner, c, l.writer)
		}
		l.writer = nil
		l.mon.Broadcast()
	case l.readers > 0:
		l.readers--
		if l.readers == 0 {
			// Only writers can be waiting while readers hold the lock.
			l.mon.Signal()
		}
	}
	return nil
}

// Readers returns the number of active readers. The result may be stale.
func (l *ReadersPreferred) Readers() int {
	l.mon.Lock()
	defer l.mon.Unlock()
	return l.readers
}

// Writer returns the active writer, or nil. The result may be stale.
func (l *ReadersPreferred) Writer() *monitors.Caller {
	l.mon.Lock()
	defer l.mon.Unlock()
	return l.writer
}

// Writing reports whether a writer is active. The result may be stale.
func (l *ReadersPreferred) Writing() bool {
	return l.Writer() != nil
}
