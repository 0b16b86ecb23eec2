package monitors

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// A Group runs functions on behalf of Callers, each in its own goroutine. When
// a function returns, its Caller exits, which is how barrier watchdogs learn
// that a participant is gone.
//
// Unlike errgroup.Group, Wait reports every failure, not only the first one.
//
// A zero Group is valid and has no limit on the number of active goroutines.
type Group struct {
	eg errgroup.Group

	mu   sync.Mutex
	merr *multierror.Error
}

// Go calls f in a new goroutine on behalf of c. It blocks until the new
// goroutine can be added without exceeding the configured limit.
//
// A non-nil error returned by f is recorded with the caller's name. A panic in f
// propagates as usual, after c has exited.
func (g *Group) Go(c *Caller, f func(c *Caller) error) {
	g.eg.Go(func() error {
		defer c.Exit()
		if err := f(c); err != nil {
			g.record(fmt.Errorf("%s: %w", c.Name(), err))
		}
		return nil
	})
}

func (g *Group) record(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.merr = multierror.Append(g.merr, err)
}

// Wait blocks until all functions started by Go have returned, then returns
// the accumulated errors, or nil if every function succeeded.
func (g *Group) Wait() error {
	_ = g.eg.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.merr.ErrorOrNil()
}

// SetLimit limits the number of active goroutines in this group to at most n. A
// negative value indicates no limit.
//
// The limit must not be modified while any goroutines in the group are active.
func (g *Group) SetLimit(n int) {
	g.eg.SetLimit(n)
}
