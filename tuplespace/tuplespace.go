package tuplespace

import (
	"context"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/internal/nilcheck"
	"github.com/notorious-go/monitors/monitor"
)

// A TupleSpace is a blocking tag-indexed store. It must be created with New.
type TupleSpace[T any] struct {
	mon monitor.Monitor
	// Tags with at least one pending payload, in order of first use.
	space *orderedmap.OrderedMap[string, []T]
}

// New returns an empty TupleSpace.
func New[T any]() *TupleSpace[T] {
	return &TupleSpace[T]{space: orderedmap.NewOrderedMap[string, []T]()}
}

// Put appends v to the payloads of tag and wakes every waiting reader. Nil
// payloads are rejected with monitors.ErrNilPayload.
func (s *TupleSpace[T]) Put(tag string, v T) error {
	if nilcheck.IsNil(v) {
		return monitors.ErrNilPayload
	}

	s.mon.Lock()
	defer s.mon.Unlock()
	seq, _ := s.space.Get(tag)
	s.space.Set(tag, append(seq, v))
	s.mon.Broadcast()
	return nil
}

// Take blocks until tag has a payload, then removes and returns the oldest
// one.
func (s *TupleSpace[T]) Take(ctx context.Context, tag string) (T, error) {
	return s.get(ctx, tag, true)
}

// Peek blocks until tag has a payload, then returns the oldest one without
// removing it.
func (s *TupleSpace[T]) Peek(ctx context.Context, tag string) (T, error) {
	return s.get(ctx, tag, false)
}

func (s *TupleSpace[T]) get(ctx context.Context, tag string, remove bool) (T, error) {
	var zero T
	if err := monitors.Check(ctx); err != nil {
		return zero, err
	}

	s.mon.Lock()
	defer s.mon.Unlock()
	for {
		if seq, ok := s.space.Get(tag); ok && len(seq) > 0 {
			v := seq[0]
			if remove {
				if len(seq) == 1 {
					s.space.Delete(tag)
				} else {
					seq[0] = zero
					s.space.Set(tag, seq[1:])
				}
			}
			return v, nil
		}
		if err := s.mon.Wait(ctx); err != nil {
			return zero, err
		}
	}
}

// Tags returns the tags that have pending payloads, in order of first use.
func (s *TupleSpace[T]) Tags() []string {
	s.mon.Lock()
	defer s.mon.Unlock()
	return s.space.Keys()
}

// Len returns the number of pending payloads of tag.
func (s *TupleSpace[T]) Len(tag string) int {
	s.mon.Lock()
	defer s.mon.Unlock()
	seq, _ := s.space.Get(tag)
	return len(seq)
}
