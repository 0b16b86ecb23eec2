// Package monitors provides blocking synchronization primitives built on a
// single monitor mechanism: one exclusive lock paired with a condition on which
// goroutines wait and are woken by others holding the lock.
//
// The package is organized into sub-packages, one per primitive family:
//
//   - monitor: the foundation; a lock with Wait, Signal and Broadcast
//   - condvar: a broadcast-settable condition and its one-shot Latch variant
//   - mutex: a reentrant mutual exclusion lock owned by a [Caller]
//   - semaphore: counting semaphores, plain and FIFO-fair
//   - rwlock: reader/writer locks with reader-priority or writer-priority
//   - barrier: a cyclic multi-party rendezvous with payload exchange
//   - sharedqueue: blocking bounded and unbounded producer/consumer queues
//   - channel: a one-to-one rendezvous channel and a many-to-one Port
//   - future and tuplespace: thin collaborators built on the above
//
// This root package holds what the primitives share: the [Lock], [RWLock],
// [SharedQueue] and [Channel] contracts, the [Caller] identity token, the
// [Liveness] capability, and the error taxonomy.
//
// # Cancellation
//
// Every blocking operation takes a [context.Context] as its first argument.
// Cancelling the context is the interruption signal. A context that is already
// done when the call starts fails the call immediately, without side effects. A
// context cancelled while the call is blocked fails the call without granting
// the requested resource. Either way the returned error matches
// [ErrInterrupted] and the context's own error:
//
//	if err := sem.Acquire(ctx); err != nil {
//	    // errors.Is(err, monitors.ErrInterrupted) == true
//	    // errors.Is(err, context.Canceled) == true when ctx was cancelled
//	    return err
//	}
//	defer sem.Release()
//
// Interruption never releases anything the caller already holds. Recovering is
// the caller's responsibility.
//
// The one exception is the barrier: a participant interrupted while waiting
// breaks the barrier for everyone.
//
// # Ownership
//
// Goroutines have no identity in Go. Primitives that track an owner (the
// reentrant mutex and the writer side of the writer-priority lock) instead take
// an explicit [Caller], compared by pointer identity:
//
//	me := monitors.NewCaller("indexer")
//	if err := mu.Acquire(ctx, me); err != nil {
//	    return err
//	}
//	defer mu.Release(me)
//
// Barrier participants are Callers as well. A Caller is alive until its Exit
// method is called, which is what the barrier's watchdog polls by default.
//
// # Timeouts
//
// Bounded waits (Attempt, AwaitTimeout, ...) measure the remaining budget after
// every wakeup, because a wakeup does not imply the awaited predicate holds.
package monitors
