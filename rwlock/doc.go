// Package rwlock provides reader/writer locks with two fairness policies over
// the same contract, [monitors.RWLock].
//
// Any number of readers may hold the lock at once, or a single writer. Readers
// are anonymous; the writer is the Caller that acquired the write section, and
// only that Caller may release it.
//
//	if err := l.AcquireWrite(ctx, me); err != nil {
//	    return err
//	}
//	defer l.Release(me)
//
// # Policies
//
// [ReadersPreferred] lets readers in whenever no writer is active. It is the
// cheaper of the two, but a steady stream of overlapping readers starves
// writers indefinitely. That is the accepted cost of the policy, not a bug.
//
// [WritersPreferred] stops admitting readers as soon as a writer is waiting,
// and serves writers in strict arrival order. Waiting writers block on private
// tokens so that exactly the oldest one is handed the lock. Readers that
// arrive while a writer is queued wait for it to acquire and release the lock.
package rwlock
