package mutex_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/mutex"
)

func TestMutexIsReentrant(t *testing.T) {
	t.Parallel()

	var mu mutex.Mutex
	me := monitors.NewCaller("me")

	const depth = 5
	for i := range depth {
		require.NoError(t, mu.Acquire(t.Context(), me))
		assert.Equal(t, i+1, mu.Count())
	}
	ok, err := mu.Attempt(t.Context(), me, 0)
	require.NoError(t, err)
	require.True(t, ok, "the owner must not block on its own mutex")
	assert.Equal(t, depth+1, mu.Count())
	assert.Same(t, me, mu.Owner())

	for range depth {
		require.NoError(t, mu.Release(me))
		assert.Same(t, me, mu.Owner())
	}
	require.NoError(t, mu.Release(me))
	assert.Nil(t, mu.Owner())
	assert.Zero(t, mu.Count())
}

func TestMutexOthersWaitForFullRelease(t *testing.T) {
	t.Parallel()

	var mu mutex.Mutex
	owner, other := monitors.NewCaller("owner"), monitors.NewCaller("other")

	require.NoError(t, mu.Acquire(t.Context(), owner))
	require.NoError(t, mu.Acquire(t.Context(), owner))

	acquired := make(chan error, 1)
	go func() {
		acquired <- mu.Acquire(t.Context(), other)
	}()

	require.NoError(t, mu.Release(owner))
	select {
	case <-acquired:
		t.Fatal("acquired a mutex still held once by its owner")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, mu.Release(owner))
	require.NoError(t, <-acquired)
	assert.Same(t, other, mu.Owner())
	assert.Equal(t, 1, mu.Count())
}

func TestMutexReleaseByNonOwner(t *testing.T) {
	t.Parallel()

	var mu mutex.Mutex
	owner, intruder := monitors.NewCaller("owner"), monitors.NewCaller("intruder")

	err := mu.Release(owner)
	require.ErrorIs(t, err, monitors.ErrNotOwner, "releasing an unowned mutex")

	require.NoError(t, mu.Acquire(t.Context(), owner))
	require.NoError(t, mu.Acquire(t.Context(), owner))

	for _, c := range []*monitors.Caller{intruder, nil} {
		err := mu.Release(c)
		require.ErrorIs(t, err, monitors.ErrNotOwner)
		assert.Same(t, owner, mu.Owner())
		assert.Equal(t, 2, mu.Count())
	}
}

func TestMutexRejectsNilCaller(t *testing.T) {
	t.Parallel()

	var mu mutex.Mutex
	require.ErrorIs(t, mu.Acquire(t.Context(), nil), monitors.ErrInvalidArgument)
	_, err := mu.Attempt(t.Context(), nil, time.Second)
	require.ErrorIs(t, err, monitors.ErrInvalidArgument)
	assert.Nil(t, mu.Owner())
}

func TestMutexAttemptTimesOut(t *testing.T) {
	t.Parallel()

	var mu mutex.Mutex
	owner, other := monitors.NewCaller("owner"), monitors.NewCaller("other")
	require.NoError(t, mu.Acquire(t.Context(), owner))

	start := time.Now()
	ok, err := mu.Attempt(t.Context(), other, 30*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Same(t, owner, mu.Owner())
	assert.Equal(t, 1, mu.Count())
}

func TestMutexInterrupted(t *testing.T) {
	t.Parallel()

	var mu mutex.Mutex
	owner, other := monitors.NewCaller("owner"), monitors.NewCaller("other")

	cancelled, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, mu.Acquire(cancelled, owner), monitors.ErrInterrupted)
	assert.Nil(t, mu.Owner(), "an interrupted caller must not be granted the mutex")

	require.NoError(t, mu.Acquire(t.Context(), owner))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	err := mu.Acquire(ctx, other)
	require.ErrorIs(t, err, monitors.ErrInterrupted)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Same(t, owner, mu.Owner())
	assert.Equal(t, 1, mu.Count())
}

func TestMutexExcludes(t *testing.T) {
	t.Parallel()

	var (
		mu      mutex.Mutex
		g       monitors.Group
		inside  int
		counter int
		guard   sync.Mutex
	)

	for _, c := range monitors.NewCallers("worker", 8) {
		g.Go(c, func(c *monitors.Caller) error {
			for range 100 {
				if err := mu.Acquire(t.Context(), c); err != nil {
					return err
				}
				guard.Lock()
				inside++
				assert.Equal(t, 1, inside, "two callers inside the critical section")
				guard.Unlock()

				counter++

				guard.Lock()
				inside--
				guard.Unlock()
				if err := mu.Release(c); err != nil {
					return err
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, 800, counter)
}
