package sharedqueue

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/internal/nilcheck"
	"github.com/notorious-go/monitors/monitor"
)

// DefaultCapacity is a large capacity for queues that should rarely block
// producers.
const DefaultCapacity = 8 * 1024

// storage is the container behind a queue. It is only accessed with the
// queue's monitor held.
type storage[T any] interface {
	push(v T)
	pop() T
	len() int
	clear()
}

// queue implements the blocking protocol shared by all queues over a storage.
type queue[T any] struct {
	mon      monitor.Monitor
	capacity int
	store    storage[T]
	// Mirrors store.len() for lock-free snapshots.
	size atomic.Int64
}

func validCapacity(capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("%w: illegal capacity %d", monitors.ErrInvalidArgument, capacity)
	}
	return nil
}

// Add blocks while the queue is full, then appends v.
func (q *queue[T]) Add(ctx context.Context, v T) error {
	if err := monitors.Check(ctx); err != nil {
		return err
	}
	if nilcheck.IsNil(v) {
		return monitors.ErrNilPayload
	}

	q.mon.Lock()
	defer q.mon.Unlock()
	for q.store.len() >= q.capacity {
		if err := q.mon.Wait(ctx); err != nil {
			return err
		}
	}
	q.store.push(v)
	q.size.Add(1)
	q.mon.Broadcast()
	return nil
}

// Remove blocks while the queue is empty, then removes and returns the oldest
// item.
func (q *queue[T]) Remove(ctx context.Context) (T, error) {
	var zero T
	if err := monitors.Check(ctx); err != nil {
		return zero, err
	}

	q.mon.Lock()
	defer q.mon.Unlock()
	for q.store.len() == 0 {
		if err := q.mon.Wait(ctx); err != nil {
			return zero, err
		}
	}
	v := q.store.pop()
	q.size.Add(-1)
	q.mon.Broadcast()
	return v, nil
}

// Clear drops every queued item and wakes all waiters. Blocked producers then
// find room; blocked consumers keep waiting.
func (q *queue[T]) Clear() {
	q.mon.Lock()
	defer q.mon.Unlock()
	q.store.clear()
	q.size.Store(0)
	q.mon.Broadcast()
}

// Cap returns the capacity the queue was created with.
func (q *queue[T]) Cap() int {
	return q.capacity
}

// Len returns the number of queued items. The result may be stale.
func (q *queue[T]) Len() int {
	return int(q.size.Load())
}

// IsEmpty reports whether the queue is empty. The result may be stale.
func (q *queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// IsFull reports whether the queue is full. The result may be stale.
func (q *queue[T]) IsFull() bool {
	return q.Len() >= q.capacity
}
