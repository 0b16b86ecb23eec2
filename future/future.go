package future

import (
	"context"
	"time"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/condvar"
	"github.com/notorious-go/monitors/internal/locking"
)

// A Future holds a value that becomes available once.
//
// The zero Future is unset and ready to use.
type Future[T any] struct {
	mu    locking.Mutex
	ready condvar.Latch
	value T
}

// New returns an unset Future.
func New[T any]() *Future[T] {
	return new(Future[T])
}

// Set stores v and releases every reader, unless a value was set before. It
// reports whether v was stored.
func (f *Future[T]) Set(v T) bool {
	if f.ready.HasFired() {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ready.HasFired() {
		return false
	}
	f.value = v
	f.ready.Fire()
	return true
}

// Get blocks until the value is set or ctx is done.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	if err := f.ready.Await(ctx); err != nil {
		var zero T
		return zero, err
	}
	return f.value, nil
}

// GetTimeout is like Get but fails with a *monitors.TimeoutError if the value
// is not set within timeout.
func (f *Future[T]) GetTimeout(ctx context.Context, timeout time.Duration) (T, error) {
	var zero T
	start := time.Now()
	ok, err := f.ready.AwaitTimeout(ctx, timeout)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, &monitors.TimeoutError{Elapsed: time.Since(start)}
	}
	return f.value, nil
}

// IsSet reports whether a value has been set.
func (f *Future[T]) IsSet() bool {
	return f.ready.HasFired()
}
