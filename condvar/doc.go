// Package condvar provides a single-bit condition that goroutines await until
// it turns true.
//
// A [CondVar] can be fired and reset any number of times. A [Latch] is a
// CondVar that, once fired, stays fired forever; it is the usual start signal
// for a group of workers created beforehand:
//
//	var start condvar.Latch
//	for range n {
//	    go func() {
//	        if err := start.Await(ctx); err != nil {
//	            return
//	        }
//	        // ... work ...
//	    }()
//	}
//	doSomethingElse() // don't let them run yet
//	start.Fire()      // let all workers proceed
//
// # Nested monitor lockout
//
// Never await a condition while holding a lock that the firing goroutine needs
// to acquire first; the firing goroutine would block forever. Release the outer
// lock before awaiting.
package condvar
