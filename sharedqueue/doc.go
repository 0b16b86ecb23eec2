// Package sharedqueue provides blocking FIFO queues shared by producers and
// consumers.
//
// Add blocks while the queue is full and Remove blocks while it is empty. Both
// re-check their guard after every wakeup, and every successful Add, Remove or
// Clear wakes all waiters so that producers and consumers alike re-evaluate
// theirs.
//
// [Bounded] stores its items in a fixed circular buffer sized at construction.
// [Unbounded] stores them in a linked list that grows on demand; its capacity
// is nominal and only decides when IsFull reports true and Add blocks.
//
//	q, err := sharedqueue.NewBounded[*Job](64)
//	...
//	// producer
//	if err := q.Add(ctx, job); err != nil {
//	    return err
//	}
//	// consumer
//	job, err := q.Remove(ctx)
//
// Nil values (nil pointers, interfaces, maps, slices, channels and functions)
// cannot be queued and are rejected with [monitors.ErrNilPayload].
package sharedqueue
