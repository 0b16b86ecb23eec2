package sharedqueue

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/notorious-go/monitors"
)

var _ monitors.SharedQueue[int] = (*Unbounded[int])(nil)

// Unbounded is a blocking queue over a linked list. Its capacity only decides
// when the queue counts as full; storage grows with the number of items. It must
// be created with NewUnbounded.
type Unbounded[T any] struct {
	queue[T]
}

// NewUnbounded returns an empty Unbounded queue that counts as full once it
// holds capacity items. A capacity below 1 is rejected with
// monitors.ErrInvalidArgument.
func NewUnbounded[T any](capacity int) (*Unbounded[T], error) {
	if err := validCapacity(capacity); err != nil {
		return nil, err
	}
	q := new(Unbounded[T])
	q.capacity = capacity
	q.store = &list[T]{items: linkedlistqueue.New()}
	return q, nil
}

type list[T any] struct {
	items *linkedlistqueue.Queue
}

func (l *list[T]) push(v T) {
	l.items.Enqueue(v)
}

func (l *list[T]) pop() T {
	v, _ := l.items.Dequeue()
	return v.(T)
}

func (l *list[T]) len() int {
	return l.items.Size()
}

func (l *list[T]) clear() {
	l.items.Clear()
}
