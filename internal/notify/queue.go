package notify

import (
	"github.com/emirpasic/gods/lists/doublylinkedlist"
)

// A Queue holds Tokens in arrival order. Its length doubles as the number of
// waiting calls.
//
// A Queue is not safe for concurrent use; it is guarded by the monitor of the
// primitive that owns it.
type Queue struct {
	list *doublylinkedlist.List
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{list: doublylinkedlist.New()}
}

// Push appends t at the back of the queue.
func (q *Queue) Push(t *Token) {
	q.list.Add(t)
}

// Front returns the oldest Token without removing it, or nil if the queue is
// empty.
func (q *Queue) Front() *Token {
	v, ok := q.list.Get(0)
	if !ok {
		return nil
	}
	return v.(*Token)
}

// PopFront removes and returns the oldest Token, or nil if the queue is empty.
func (q *Queue) PopFront() *Token {
	t := q.Front()
	if t != nil {
		q.list.Remove(0)
	}
	return t
}

// Remove deletes t wherever it is in the queue and reports whether it was
// there.
func (q *Queue) Remove(t *Token) bool {
	i := q.list.IndexOf(t)
	if i < 0 {
		return false
	}
	q.list.Remove(i)
	return true
}

// Len returns the number of queued Tokens.
func (q *Queue) Len() int {
	return q.list.Size()
}
