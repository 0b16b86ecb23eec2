package barrier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/monitor"
)

// An ExchangeFunc runs once per cycle, by the last participant to arrive, over
// the payloads of all participants in arrival order. The last element is the
// payload of the participant running the function. Each participant receives
// the element at its own arrival index once the function returns.
//
// A non-nil error, or a panic, breaks the barrier.
type ExchangeFunc[T any] func(payloads []T) error

// Rotate is an ExchangeFunc that hands every participant the payload of the
// participant that arrived after it, and the last one the payload of the
// first. It suits the resource exchanger pattern, where participants trade
// buffers at every meeting point.
func Rotate[T any](payloads []T) error {
	if len(payloads) < 2 {
		return nil
	}
	first := payloads[0]
	copy(payloads, payloads[1:])
	payloads[len(payloads)-1] = first
	return nil
}

// A Barrier is a cyclic rendezvous point for a fixed set of participants.
type Barrier[T any] struct {
	participants []*monitors.Caller
	registered   map[*monitors.Caller]struct{}
	opts         options

	mon      monitor.Monitor
	exchange ExchangeFunc[T]
	current  *generation[T]
	spins    int
	broken   *monitors.BrokenBarrierError
}

// A generation holds the state of a single cycle. Participants keep a pointer
// to the generation they arrived in, so a fast participant entering the next
// cycle cannot overwrite the result of a slow one still reading the last.
type generation[T any] struct {
	payloads []T
	arrived  int
	done     bool
	// Set when the exchange function of this cycle failed.
	err error
}

// New returns a Barrier for the given participants. The exchange function may
// be nil, in which case every participant gets its own payload back.
//
// It fails with monitors.ErrInvalidArgument if participants is nil, has fewer
// than two entries, or holds nil or duplicate Callers.
func New[T any](participants []*monitors.Caller, exchange ExchangeFunc[T], opts ...Option) (*Barrier[T], error) {
	if participants == nil {
		return nil, fmt.Errorf("%w: nil participant list", monitors.ErrInvalidArgument)
	}
	if len(participants) < 2 {
		return nil, fmt.Errorf("%w: not enough participants: %d", monitors.ErrInvalidArgument, len(participants))
	}

	registered := make(map[*monitors.Caller]struct{}, len(participants))
	for i, c := range participants {
		if c == nil {
			return nil, fmt.Errorf("%w: participant %d is nil", monitors.ErrInvalidArgument, i)
		}
		if _, ok := registered[c]; ok {
			return nil, fmt.Errorf("%w: participant %v is listed twice", monitors.ErrInvalidArgument, c)
		}
		registered[c] = struct{}{}
	}

	b := &Barrier[T]{
		participants: append([]*monitors.Caller(nil), participants...),
		registered:   registered,
		opts:         defaultOptions(),
		exchange:     exchange,
	}
	for _, opt := range opts {
		opt(&b.opts)
	}
	b.current = b.newGeneration()
	return b, nil
}

func (b *Barrier[T]) newGeneration() *generation[T] {
	return &generation[T]{payloads: make([]T, len(b.participants))}
}

// Await blocks until every participant has arrived in the current cycle.
func (b *Barrier[T]) Await(ctx context.Context, c *monitors.Caller) error {
	var zero T
	_, err := b.Exchange(ctx, c, zero)
	return err
}

// Exchange presents payload at the meeting point, blocks until every
// participant has arrived, and returns the payload the exchange function
// assigned to the caller's arrival index.
//
// It fails with monitors.ErrNotParticipant if c is not a participant, with a
// *monitors.BrokenBarrierError if the barrier is or becomes broken, and with an
// interruption error if ctx is done before the cycle completes. In the last
// case the barrier is broken for everyone else.
func (b *Barrier[T]) Exchange(ctx context.Context, c *monitors.Caller, payload T) (T, error) {
	var zero T
	if _, ok := b.registered[c]; !ok {
		return zero, fmt.Errorf("%w: %v", monitors.ErrNotParticipant, c)
	}

	b.mon.Lock()
	defer b.mon.Unlock()

	if ctx.Err() != nil {
		b.breakLocked(interruptedReason(ctx, c), nil)
		return zero, monitors.Interrupted(ctx)
	}
	if b.broken != nil {
		return zero, b.broken
	}

	g := b.current
	index := g.arrived
	g.payloads[index] = payload
	g.arrived++

	if g.arrived == len(b.participants) {
		b.trip(g)
	} else if err := b.await(ctx, c, g, index == 0); err != nil {
		return zero, err
	}

	if g.err != nil {
		return zero, g.err
	}
	return g.payloads[index], nil
}

// await blocks until g is done. The first participant of a cycle runs the
// watchdog while it waits.
func (b *Barrier[T]) await(ctx context.Context, c *monitors.Caller, g *generation[T], watchdog bool) error {
	for !g.done {
		if b.broken != nil {
			return b.broken
		}

		var err error
		if watchdog {
			if dead := b.deadParticipant(); dead != nil {
				b.breakLocked(dead.Name()+" is no longer alive", nil)
				continue
			}
			err = b.mon.WaitUntil(ctx, time.Now().Add(b.opts.quantum))
		} else {
			err = b.mon.Wait(ctx)
		}

		if err != nil && !g.done {
			b.breakLocked(interruptedReason(ctx, c), nil)
			return err
		}
	}
	return nil
}

// trip completes g. It must be called with mon held.
func (b *Barrier[T]) trip(g *generation[T]) {
	if err := b.runExchange(g.payloads); err != nil {
		g.err = b.breakLocked("exchange function failed", err)
	}
	// The cycle counts even if its exchange failed: the barrier was reached.
	b.spins++
	g.done = true
	b.current = b.newGeneration()
	b.mon.Broadcast()

	b.opts.logger.Debug("barrier cycle completed",
		slog.Int("cycle", b.spins),
		slog.Int("participants", len(b.participants)),
	)
}

// The cause of an interruption belongs to the interrupted participant only,
// so it is reported in the reason rather than wrapped.
func interruptedReason(ctx context.Context, c *monitors.Caller) string {
	return fmt.Sprintf("%s was interrupted: %v", c.Name(), context.Cause(ctx))
}

func (b *Barrier[T]) runExchange(payloads []T) (err error) {
	if b.exchange == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return b.exchange(payloads)
}

func (b *Barrier[T]) deadParticipant() *monitors.Caller {
	for _, c := range b.participants {
		if !b.opts.liveness.Alive(c) {
			return c
		}
	}
	return nil
}

// breakLocked breaks the barrier unless it is broken already, and returns the
// error participants receive. It must be called with mon held.
func (b *Barrier[T]) breakLocked(reason string, cause error) *monitors.BrokenBarrierError {
	if b.broken == nil {
		b.broken = &monitors.BrokenBarrierError{Reason: reason, Cause: cause}
		b.opts.logger.Warn("barrier broken",
			slog.String("reason", reason),
			slog.Any("cause", cause),
			slog.Int("cycle", b.spins),
			slog.Int("arrived", b.current.arrived),
		)
	}
	b.mon.Broadcast()
	return b.broken
}

// Break breaks the barrier, releasing every waiting participant with a
// *monitors.BrokenBarrierError carrying reason. Later calls fail the same way.
// Breaking a broken barrier keeps the original reason.
func (b *Barrier[T]) Break(reason string) {
	if reason == "" {
		reason = "barrier released"
	}
	b.mon.Lock()
	defer b.mon.Unlock()
	b.breakLocked(reason, nil)
}

// SetExchange replaces the exchange function, starting with the next cycle to
// complete. A nil function hands every participant its own payload back.
func (b *Barrier[T]) SetExchange(f ExchangeFunc[T]) {
	b.mon.Lock()
	defer b.mon.Unlock()
	b.exchange = f
}

// Participants returns the number of participants.
func (b *Barrier[T]) Participants() int {
	return len(b.participants)
}

// LateArrivals returns the number of participants that have not arrived in
// the current cycle yet. The result may be stale.
func (b *Barrier[T]) LateArrivals() int {
	b.mon.Lock()
	defer b.mon.Unlock()
	return len(b.participants) - b.current.arrived
}

// IsBroken reports whether the barrier is broken.
func (b *Barrier[T]) IsBroken() bool {
	return b.Err() != nil
}

// Err returns the *monitors.BrokenBarrierError of a broken barrier, and nil
// otherwise.
func (b *Barrier[T]) Err() error {
	b.mon.Lock()
	defer b.mon.Unlock()
	if b.broken == nil {
		return nil
	}
	return b.broken
}

// SpinCount returns the number of completed cycles. The result may be stale.
func (b *Barrier[T]) SpinCount() int {
	b.mon.Lock()
	defer b.mon.Unlock()
	return b.spins
}

// IsBroken reports whether err was caused by a broken barrier.
func IsBroken(err error) bool {
	return errors.Is(err, monitors.ErrBrokenBarrier)
}
