package sharedqueue

import (
	"fmt"
	"strings"

	"github.com/notorious-go/monitors"
)

var _ monitors.SharedQueue[int] = (*Bounded[int])(nil)

// Bounded is a blocking queue over a fixed circular buffer. It must be created
// with NewBounded.
type Bounded[T any] struct {
	queue[T]
	ring *ring[T]
}

// NewBounded returns an empty Bounded queue holding at most capacity items. A
// capacity below 1 is rejected with monitors.ErrInvalidArgument.
func NewBounded[T any](capacity int) (*Bounded[T], error) {
	if err := validCapacity(capacity); err != nil {
		return nil, err
	}
	r := &ring[T]{slots: make([]T, capacity)}
	q := &Bounded[T]{ring: r}
	q.capacity = capacity
	q.store = r
	return q, nil
}

// String returns the cursors, count and slots of the buffer, as in
// "Bounded(p=2,g=0,#=2)[a;b;<nil>]".
func (q *Bounded[T]) String() string {
	q.mon.Lock()
	defer q.mon.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Bounded(p=%d,g=%d,#=%d)[", q.ring.put, q.ring.get, q.ring.count)
	for i, v := range q.ring.slots {
		if i > 0 {
			sb.WriteByte(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')
	return sb.String()
}

// ring is a circular buffer with modulo-advancing cursors.
type ring[T any] struct {
	slots    []T
	put, get int
	count    int
}

func (r *ring[T]) push(v T) {
	r.slots[r.put] = v
	r.put = (r.put + 1) % len(r.slots)
	r.count++
}

func (r *ring[T]) pop() T {
	var zero T
	v := r.slots[r.get]
	r.slots[r.get] = zero
	r.get = (r.get + 1) % len(r.slots)
	r.count--
	return v
}

func (r *ring[T]) len() int {
	return r.count
}

func (r *ring[T]) clear() {
	clear(r.slots)
	r.put, r.get, r.count = 0, 0, 0
}
