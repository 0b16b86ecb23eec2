// Package mutex provides a reentrant mutual exclusion lock owned by a Caller.
//
// The Caller that holds a Mutex may acquire it again any number of times
// without blocking, and must release it the same number of times before anyone
// else can acquire it:
//
//	me := monitors.NewCaller("indexer")
//	if err := mu.Acquire(ctx, me); err != nil {
//	    return err
//	}
//	defer mu.Release(me)
//
// Waiters are not ordered. When the Mutex is finally released every waiter is
// woken, and whichever re-acquires the monitor first becomes the next owner.
package mutex
