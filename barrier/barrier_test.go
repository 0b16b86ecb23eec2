package barrier_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/barrier"
)

func TestNewValidatesParticipants(t *testing.T) {
	t.Parallel()

	a, b := monitors.NewCaller("a"), monitors.NewCaller("b")

	tests := map[string][]*monitors.Caller{
		"nil list":        nil,
		"empty list":      {},
		"one participant": {a},
		"nil participant": {a, nil},
		"duplicate":       {a, b, a},
	}
	for name, participants := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := barrier.New[int](participants, nil)
			require.ErrorIs(t, err, monitors.ErrInvalidArgument)
		})
	}

	bar, err := barrier.New[int]([]*monitors.Caller{a, b}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, bar.Participants())
	assert.Equal(t, 2, bar.LateArrivals())
	assert.Zero(t, bar.SpinCount())
	assert.False(t, bar.IsBroken())
	assert.NoError(t, bar.Err())
}

func TestCycles(t *testing.T) {
	t.Parallel()

	const cycles = 200
	callers := monitors.NewCallers("participant", 3)
	b, err := barrier.New[string](callers, nil)
	require.NoError(t, err)

	var g monitors.Group
	for _, c := range callers {
		g.Go(c, func(c *monitors.Caller) error {
			for i := range cycles {
				sent := fmt.Sprintf("%s/%d", c.Name(), i)
				got, err := b.Exchange(t.Context(), c, sent)
				if err != nil {
					return err
				}
				if got != sent {
					return fmt.Errorf("cycle %d: sent %q, got back %q", i, sent, got)
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, cycles, b.SpinCount())
	assert.False(t, b.IsBroken())
	assert.Equal(t, 3, b.LateArrivals())
}

func TestIntruderIsRejected(t *testing.T) {
	t.Parallel()

	callers := monitors.NewCallers("participant", 2)
	intruder := monitors.NewCaller("intruder")
	b, err := barrier.New[int](callers, nil)
	require.NoError(t, err)

	first := make(chan error, 1)
	go func() { first <- b.Await(t.Context(), callers[0]) }()
	require.Eventually(t, func() bool { return b.LateArrivals() == 1 }, time.Second, time.Millisecond)

	for _, c := range []*monitors.Caller{intruder, nil} {
		err := b.Await(t.Context(), c)
		require.ErrorIs(t, err, monitors.ErrNotParticipant)
		assert.False(t, barrier.IsBroken(err))
	}
	assert.False(t, b.IsBroken())
	assert.Zero(t, b.SpinCount())
	assert.Equal(t, 1, b.LateArrivals())

	require.NoError(t, b.Await(t.Context(), callers[1]))
	require.NoError(t, <-first)
	assert.Equal(t, 1, b.SpinCount())
}

func TestFailingExchangeBreaksBarrier(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	tests := map[string]barrier.ExchangeFunc[int]{
		"error": func([]int) error { return errBoom },
		"panic": func([]int) error { panic(errBoom) },
	}

	for name, exchange := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			callers := monitors.NewCallers("participant", 3)
			b, err := barrier.New(callers, exchange)
			require.NoError(t, err)

			var g monitors.Group
			for _, c := range callers {
				g.Go(c, func(c *monitors.Caller) error {
					_, err := b.Exchange(t.Context(), c, 1)
					return err
				})
			}

			err = g.Wait()
			require.Error(t, err)
			var merr interface{ WrappedErrors() []error }
			require.ErrorAs(t, err, &merr)
			require.Len(t, merr.WrappedErrors(), 3, "every participant fails")
			for _, err := range merr.WrappedErrors() {
				assert.ErrorIs(t, err, monitors.ErrBrokenBarrier)
			}

			var broken *monitors.BrokenBarrierError
			require.ErrorAs(t, b.Err(), &broken)
			assert.Equal(t, "exchange function failed", broken.Reason)
			if name == "error" {
				assert.ErrorIs(t, broken, errBoom)
			} else {
				assert.ErrorContains(t, broken, "panic")
			}

			// The failed cycle was reached and counts, but nothing ever will again.
			assert.Equal(t, 1, b.SpinCount())
			for _, c := range callers {
				assert.ErrorIs(t, b.Await(t.Context(), c), monitors.ErrBrokenBarrier)
			}
			assert.Equal(t, 1, b.SpinCount())
		})
	}
}

func TestInterruptedParticipantBreaksBarrier(t *testing.T) {
	t.Parallel()

	callers := monitors.NewCallers("participant", 3)
	b, err := barrier.New[int](callers, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	interrupted := make(chan error, 1)
	go func() { interrupted <- b.Await(ctx, callers[0]) }()

	other := make(chan error, 1)
	go func() { other <- b.Await(t.Context(), callers[1]) }()
	require.Eventually(t, func() bool { return b.LateArrivals() == 1 }, time.Second, time.Millisecond)

	cancel()
	err = <-interrupted
	require.ErrorIs(t, err, monitors.ErrInterrupted)
	require.ErrorIs(t, err, context.Canceled)

	err = <-other
	require.ErrorIs(t, err, monitors.ErrBrokenBarrier)
	assert.NotErrorIs(t, err, context.Canceled, "the cause belongs to the interrupted participant")
	assert.ErrorContains(t, err, "participant-0 was interrupted")

	require.ErrorIs(t, b.Await(t.Context(), callers[2]), monitors.ErrBrokenBarrier)
	assert.Zero(t, b.SpinCount())
}

func TestInterruptedAtEntryBreaksBarrier(t *testing.T) {
	t.Parallel()

	callers := monitors.NewCallers("participant", 2)
	b, err := barrier.New[int](callers, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, b.Await(ctx, callers[0]), monitors.ErrInterrupted)
	assert.True(t, b.IsBroken())
	require.ErrorIs(t, b.Await(t.Context(), callers[1]), monitors.ErrBrokenBarrier)
}

func TestWatchdogDetectsDeadParticipant(t *testing.T) {
	t.Parallel()

	callers := monitors.NewCallers("participant", 3)
	b, err := barrier.New[int](callers, nil, barrier.WithQuantum(5*time.Millisecond))
	require.NoError(t, err)

	// The last participant dies without ever reaching the barrier.
	var g monitors.Group
	g.Go(callers[2], func(*monitors.Caller) error { return nil })
	for _, c := range callers[:2] {
		g.Go(c, func(c *monitors.Caller) error {
			return b.Await(t.Context(), c)
		})
	}

	err = g.Wait()
	require.ErrorIs(t, err, monitors.ErrBrokenBarrier)
	assert.ErrorContains(t, err, "participant-2 is no longer alive")
	assert.Zero(t, b.SpinCount())
}

func TestWatchdogUsesLiveness(t *testing.T) {
	t.Parallel()

	callers := monitors.NewCallers("participant", 2)
	dead := make(chan struct{})
	liveness := monitors.LivenessFunc(func(c *monitors.Caller) bool {
		select {
		case <-dead:
			return c != callers[1]
		default:
			return true
		}
	})
	b, err := barrier.New[int](callers, nil,
		barrier.WithQuantum(5*time.Millisecond),
		barrier.WithLiveness(liveness),
	)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- b.Await(t.Context(), callers[0]) }()

	select {
	case err := <-done:
		t.Fatalf("the barrier broke while everyone was alive: %v", err)
	case <-time.After(30 * time.Millisecond):
	}

	close(dead)
	err = <-done
	require.ErrorIs(t, err, monitors.ErrBrokenBarrier)
	assert.ErrorContains(t, err, "participant-1 is no longer alive")
}

func TestBreak(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	callers := monitors.NewCallers("participant", 2)
	b, err := barrier.New[int](callers, nil, barrier.WithLogger(logger))
	require.NoError(t, err)

	waiting := make(chan error, 1)
	go func() { waiting <- b.Await(t.Context(), callers[0]) }()
	require.Eventually(t, func() bool { return b.LateArrivals() == 1 }, time.Second, time.Millisecond)

	b.Break("")
	b.Break("second reason is ignored")

	var broken *monitors.BrokenBarrierError
	require.ErrorAs(t, <-waiting, &broken)
	assert.Equal(t, "barrier released", broken.Reason)
	assert.Nil(t, broken.Cause)

	require.ErrorIs(t, b.Await(t.Context(), callers[1]), monitors.ErrBrokenBarrier)
	assert.Contains(t, logs.String(), `"msg":"barrier broken"`)
	assert.Contains(t, logs.String(), `"reason":"barrier released"`)
	assert.NotContains(t, logs.String(), "second reason")
}

func TestRotate(t *testing.T) {
	t.Parallel()

	payloads := []string{"a", "b", "c", "d"}
	require.NoError(t, barrier.Rotate(payloads))
	assert.Equal(t, []string{"b", "c", "d", "a"}, payloads)

	single := []string{"a"}
	require.NoError(t, barrier.Rotate(single))
	assert.Equal(t, []string{"a"}, single)
}

func TestRotateExchangesByArrivalIndex(t *testing.T) {
	t.Parallel()

	callers := monitors.NewCallers("participant", 3)
	b, err := barrier.New[string](callers, barrier.Rotate[string])
	require.NoError(t, err)

	results := make([]chan string, len(callers))
	for i, c := range callers {
		results[i] = make(chan string, 1)
		go func() {
			got, err := b.Exchange(t.Context(), c, c.Name())
			assert.NoError(t, err)
			results[i] <- got
		}()
		if i < len(callers)-1 {
			require.Eventually(t, func() bool { return b.LateArrivals() == len(callers)-i-1 }, time.Second, time.Millisecond)
		}
	}

	assert.Equal(t, "participant-1", <-results[0])
	assert.Equal(t, "participant-2", <-results[1])
	assert.Equal(t, "participant-0", <-results[2])
}

func TestSetExchange(t *testing.T) {
	t.Parallel()

	callers := monitors.NewCallers("participant", 2)
	b, err := barrier.New[int](callers, nil)
	require.NoError(t, err)

	b.SetExchange(func(payloads []int) error {
		sum := 0
		for _, p := range payloads {
			sum += p
		}
		for i := range payloads {
			payloads[i] = sum
		}
		return nil
	})

	var g monitors.Group
	for i, c := range callers {
		g.Go(c, func(c *monitors.Caller) error {
			got, err := b.Exchange(t.Context(), c, i+1)
			if err != nil {
				return err
			}
			assert.Equal(t, 3, got)
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

// Two participants trading buffers at every meeting point: with Rotate, each
// receives what the other presented, whatever the arrival order.
func Example() {
	callers := monitors.NewCallers("peer", 2)
	b, err := barrier.New[string](callers, barrier.Rotate[string])
	if err != nil {
		panic(err)
	}

	results := make([]string, len(callers))
	var g monitors.Group
	for i, c := range callers {
		g.Go(c, func(c *monitors.Caller) error {
			got, err := b.Exchange(context.Background(), c, "from "+c.Name())
			results[i] = got
			return err
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	for i, c := range callers {
		fmt.Printf("%s received %q\n", c.Name(), results[i])
	}
	fmt.Println("cycles:", b.SpinCount())

	// Output:
	// peer-0 received "from peer-1"
	// peer-1 received "from peer-0"
	// cycles: 1
}
