package monitors

import (
	"context"
	"time"
)

// Lock is the contract shared by the counting semaphores.
//
// Locks are used in before/after constructions:
//
//	if err := lock.Acquire(ctx); err != nil {
//	    return err // not acquired, nothing to release
//	}
//	defer lock.Release()
type Lock interface {
	// Acquire blocks until the lock is granted or ctx is done. On failure the
	// lock has not been acquired and no Release should be performed.
	Acquire(ctx context.Context) error

	// Attempt is like Acquire but gives up after timeout, returning false. A
	// non-positive timeout does not wait at all.
	Attempt(ctx context.Context, timeout time.Duration) (bool, error)

	// Release returns the lock, potentially waking one blocked acquirer.
	// Release never fails so it is safe to defer.
	Release()
}

// RWLock is the contract shared by the reader/writer lock policies.
//
// Readers are anonymous; any number may hold the lock at once. The single
// writer is identified by the Caller that acquired it.
type RWLock interface {
	AcquireRead(ctx context.Context) error
	AcquireWrite(ctx context.Context, c *Caller) error

	// Release ends the caller's read or write section. Releasing a write
	// section held by another caller fails with ErrNotOwner.
	Release(c *Caller) error
}

// SharedQueue is a blocking FIFO shared by producers and consumers.
//
// Add blocks while the queue is full and Remove blocks while it is empty. Len,
// IsEmpty and IsFull are snapshots that may be stale by the time they return.
type SharedQueue[T any] interface {
	Add(ctx context.Context, v T) error
	Remove(ctx context.Context) (T, error)
	Clear()
	Cap() int
	Len() int
	IsEmpty() bool
	IsFull() bool
}

// Channel is a message passing conduit.
//
// Ownership of a message transfers from sender to receiver; a sender that needs
// the message afterwards should send a copy.
type Channel[T any] interface {
	// Send rejects nil messages with ErrNilPayload.
	Send(ctx context.Context, v T) error
	Receive(ctx context.Context) (T, error)
}
