// Package semaphore provides counting semaphores built on a monitor, in two
// flavours that differ only in fairness.
//
// # Permits
//
// A semaphore holds a signed permit count. Acquire blocks while the count is
// zero or negative and then takes one permit; Release returns one. A negative
// initial count means that many Releases are owed before any Acquire can pass,
// which is handy for "wait until N things happened" constructions:
//
//	done := semaphore.New(1 - n)
//	for range n {
//	    go func() {
//	        defer done.Release()
//	        // ... work ...
//	    }()
//	}
//	done.Acquire(ctx) // passes after n Releases
//
// # Which One
//
// [Semaphore] makes no promise about which waiter is granted the next permit.
// A Release wakes a single waiter, but a goroutine arriving at the same moment
// may take the permit first; the woken waiter then simply waits again.
//
// [FIFO] grants permits in strict arrival order. Every blocked call waits on
// its own private token, and a Release wakes only the oldest one. The oldest
// token stays queued until its owner has actually taken the permit, so a new
// arrival cannot slip in between the Release and the woken waiter. The price
// is an allocation per blocked call and a wakeup chain when several permits are
// released at once.
//
// # Cancellation
//
// Both flavours implement [monitors.Lock]. A call whose context is done fails
// without taking a permit. An interruption never releases a permit already
// held; pair every successful Acquire with exactly one Release:
//
//	if err := sem.Acquire(ctx); err != nil {
//	    return err
//	}
//	defer sem.Release()
package semaphore
