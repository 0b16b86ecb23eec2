package monitors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidArgument reports invalid construction parameters. Nothing is
	// mutated when it is returned.
	ErrInvalidArgument = errors.New("monitors: invalid argument")

	// ErrNilPayload reports an attempt to enqueue or send a nil value.
	ErrNilPayload = errors.New("monitors: nil payload")

	// ErrInterrupted reports that a blocking call was abandoned because its
	// context was done.
	ErrInterrupted = errors.New("monitors: interrupted")

	// ErrNotOwner reports a release by a caller that does not own the lock.
	// This is a programming error; the lock state is left untouched.
	ErrNotOwner = errors.New("monitors: caller is not the owner")

	// ErrBrokenBarrier is matched by every BrokenBarrierError.
	ErrBrokenBarrier = errors.New("monitors: broken barrier")

	// ErrNotParticipant reports a caller that is not registered with a barrier.
	// Only the offending caller sees it; the barrier is not broken.
	ErrNotParticipant = errors.New("monitors: not a registered participant")
)

// Check returns an interruption error if ctx is already done, and nil
// otherwise. Blocking calls use it on entry.
func Check(ctx context.Context) error {
	if ctx.Err() != nil {
		return Interrupted(ctx)
	}
	return nil
}

// Interrupted returns an error matching both ErrInterrupted and the cause of
// ctx being done.
func Interrupted(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
}

// A TimeoutError reports a timed wait that exhausted its budget. Timeouts are a
// form of interruption: the error matches ErrInterrupted as well as
// context.DeadlineExceeded.
type TimeoutError struct {
	// Elapsed is the approximate time the operation waited.
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("monitors: timed out after %v", e.Elapsed)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrInterrupted || target == context.DeadlineExceeded
}

// A BrokenBarrierError is delivered to every participant of a broken barrier.
type BrokenBarrierError struct {
	// Reason describes what broke the barrier.
	Reason string
	// Cause is the underlying failure, if any (for instance the error returned
	// by the exchange function).
	Cause error
}

func (e *BrokenBarrierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("monitors: broken barrier: %s: %v", e.Reason, e.Cause)
	}
	return "monitors: broken barrier: " + e.Reason
}

func (e *BrokenBarrierError) Is(target error) bool {
	return target == ErrBrokenBarrier
}

func (e *BrokenBarrierError) Unwrap() error {
	return e.Cause
}
