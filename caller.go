package monitors

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// A Caller is an opaque identity token standing in for "the current thread".
//
// Callers are compared by pointer identity; the name and ID only serve
// diagnostics. A Caller is alive from creation until Exit is called.
//
// The nil Caller is never an owner and never a participant.
type Caller struct {
	name string
	id   uuid.UUID

	exited   chan struct{}
	exitOnce sync.Once
}

// NewCaller returns a new live Caller.
func NewCaller(name string) *Caller {
	return &Caller{
		name:   name,
		id:     uuid.New(),
		exited: make(chan struct{}),
	}
}

// NewCallers returns n live Callers named prefix-0 through prefix-(n-1), or
// none if n is not positive.
func NewCallers(prefix string, n int) []*Caller {
	if n <= 0 {
		return nil
	}
	callers := make([]*Caller, n)
	for i := range callers {
		callers[i] = NewCaller(fmt.Sprintf("%s-%d", prefix, i))
	}
	return callers
}

func (c *Caller) Name() string {
	return c.name
}

func (c *Caller) ID() uuid.UUID {
	return c.id
}

// String returns "name(id)", or "<nil>" for the nil Caller.
func (c *Caller) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", c.name, c.id)
}

// Exit marks the Caller as terminated. It is safe to call more than once.
func (c *Caller) Exit() {
	c.exitOnce.Do(func() {
		close(c.exited)
	})
}

// Exited returns a channel that is closed once Exit has been called.
func (c *Caller) Exited() <-chan struct{} {
	return c.exited
}

// Alive reports whether Exit has not been called yet.
func (c *Caller) Alive() bool {
	select {
	case <-c.exited:
		return false
	default:
		return true
	}
}

// Liveness reports whether a participant is still able to make progress. The
// barrier's watchdog polls it to detect participants that will never arrive.
type Liveness interface {
	Alive(c *Caller) bool
}

// The LivenessFunc type is an adapter to allow the use of ordinary functions
// as Liveness checks.
type LivenessFunc func(c *Caller) bool

func (f LivenessFunc) Alive(c *Caller) bool {
	return f(c)
}

// CallerLiveness is the default Liveness: a Caller is alive until it exits.
var CallerLiveness Liveness = LivenessFunc(func(c *Caller) bool {
	return c.Alive()
})
