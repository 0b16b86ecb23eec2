//go:build deadlock

package locking

import "github.com/sasha-s/go-deadlock"

// Waiters lock their notification token before the shared state, and
// notifiers lock the shared state before the token. The token's signalled
// flag makes that inversion safe, so pair ordering is not audited. Locks
// waited on for longer than DeadlockTimeout are still reported.
func init() {
	deadlock.Opts.DisableLockOrderDetection = true
}

// A Mutex is a mutual exclusion lock that reports potential deadlocks.
//
// For full docs see github.com/sasha-s/go-deadlock.
type Mutex = deadlock.Mutex

// Enabled reports whether deadlock detection is compiled in.
const Enabled = true
