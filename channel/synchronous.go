package channel

import (
	"context"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/internal/nilcheck"
	"github.com/notorious-go/monitors/monitor"
)

var _ monitors.Channel[int] = (*Synchronous[int])(nil)

// Synchronous is a one-to-one rendezvous channel with a single message slot.
//
// The zero Synchronous is empty and ready to use.
type Synchronous[T any] struct {
	mon  monitor.Monitor
	msg  T
	full bool
}

// Send blocks while the slot is occupied, then fills it. Nil messages are
// rejected with monitors.ErrNilPayload.
func (c *Synchronous[T]) Send(ctx context.Context, v T) error {
	if err := monitors.Check(ctx); err != nil {
		return err
	}
	if nilcheck.IsNil(v) {
		return monitors.ErrNilPayload
	}

	c.mon.Lock()
	defer c.mon.Unlock()
	for c.full {
		if err := c.mon.Wait(ctx); err != nil {
			return err
		}
	}
	c.msg, c.full = v, true
	c.mon.Broadcast()
	return nil
}

// Receive blocks until a message is available, then drains the slot.
func (c *Synchronous[T]) Receive(ctx context.Context) (T, error) {
	var zero T
	if err := monitors.Check(ctx); err != nil {
		return zero, err
	}

	c.mon.Lock()
	defer c.mon.Unlock()
	for !c.full {
		if err := c.mon.Wait(ctx); err != nil {
			return zero, err
		}
	}
	v := c.msg
	c.msg, c.full = zero, false
	c.mon.Broadcast()
	return v, nil
}
