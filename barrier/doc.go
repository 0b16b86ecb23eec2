// Package barrier provides a cyclic rendezvous for a fixed set of participants
// that may exchange payloads at every meeting point.
//
// # Cycles
//
// Every participant calls [Barrier.Await] or [Barrier.Exchange]. The call
// blocks until all participants have arrived, then releases them together and
// resets the barrier for the next cycle. The participant that arrives last runs
// the [ExchangeFunc], once, over the payloads in arrival order; each
// participant then gets back the payload at its own arrival index:
//
//	b, err := barrier.New(callers, barrier.Rotate[Buffer])
//	...
//	// each participant, every round:
//	full, err = b.Exchange(ctx, me, empty)
//
// # Breaking
//
// A barrier breaks, permanently, when
//
//   - Break is called,
//   - the exchange function returns an error or panics,
//   - a participant is interrupted while waiting, or at entry, or
//   - the watchdog finds a participant that is no longer alive.
//
// Every participant that is waiting, and every later call, then fails with a
// [monitors.BrokenBarrierError] carrying the reason. An interrupted participant
// gets its interruption error instead. A broken barrier cannot be repaired;
// build a new one.
//
// A caller that is not a participant is rejected with
// [monitors.ErrNotParticipant]. The barrier does not break.
//
// # Watchdog
//
// A participant that dies never arrives, which would leave everyone else
// waiting forever. The first participant to arrive in a cycle therefore wakes
// up every quantum and asks the [monitors.Liveness] capability whether all
// participants are still alive. By default a participant is alive until its
// Caller exits; [monitors.Group] exits Callers when their function returns.
package barrier
