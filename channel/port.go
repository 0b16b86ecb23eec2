package channel

import (
	"context"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/sharedqueue"
)

var _ monitors.Channel[int] = (*Port[int])(nil)

// Port is a many-to-one mailbox: any number of senders, one logical receiver,
// and a backlog of at most Cap messages. It is a Bounded queue whose Send and
// Receive are Add and Remove.
type Port[T any] struct {
	*sharedqueue.Bounded[T]
}

// NewPort returns an empty Port with room for capacity pending messages. A
// capacity below 1 is rejected with monitors.ErrInvalidArgument.
func NewPort[T any](capacity int) (*Port[T], error) {
	q, err := sharedqueue.NewBounded[T](capacity)
	if err != nil {
		return nil, err
	}
	return &Port[T]{Bounded: q}, nil
}

// Send blocks while the backlog is full, then posts v.
func (p *Port[T]) Send(ctx context.Context, v T) error {
	return p.Add(ctx, v)
}

// Receive blocks until a message is pending, then takes the oldest one.
func (p *Port[T]) Receive(ctx context.Context) (T, error) {
	return p.Remove(ctx)
}
