// Package ordertest provides utilities for testing the ordering guarantees of
// the fair primitives in this module (the FIFO semaphore, the writer queue of
// the writer-priority lock, the barrier's arrival slots).
//
// # Overview
//
// Goroutines report the moment they are granted a resource to a [Recorder].
// The recorded tokens are then checked against a list of [Event]s, each
// declaring which other events must have been granted before it.
//
// # Example Usage
//
//	var rec ordertest.Recorder
//	for i, w := range waiters {
//	    go func() {
//	        sem.Acquire(ctx)
//	        rec.Record(w)
//	    }()
//	    // ... wait until waiter i is queued ...
//	}
//	// ... release permits one at a time ...
//	ordertest.Verify(t, ordertest.Chain(waiters...), rec.Tokens())
package ordertest

import (
	"sync"
	"testing"
)

// A Recorder collects tokens in the order they are reported. It is safe for
// concurrent use. The zero Recorder is ready to use.
type Recorder struct {
	mu     sync.Mutex
	tokens []string
}

// Record appends token to the recorded sequence.
func (r *Recorder) Record(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, token)
}

// Tokens returns a copy of the recorded sequence.
func (r *Recorder) Tokens() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.tokens...)
}

// Len returns the number of recorded tokens.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

// Event is a step of a concurrent test: a token that identifies it and the
// tokens of the events that must have been recorded before it.
type Event struct {
	// Token is a unique identifier for this event.
	Token string

	// HappensAfter lists the tokens that must appear before Token in the
	// recorded sequence.
	HappensAfter []string
}

// Chain returns the events of a strict sequence, wherein each token happens
// after the one preceding it.
func Chain(tokens ...string) []Event {
	events := make([]Event, len(tokens))
	for i, token := range tokens {
		events[i].Token = token
		if i > 0 {
			events[i].HappensAfter = []string{tokens[i-1]}
		}
	}
	return events
}

// Verify checks every event against the recorded tokens.
func Verify(t testing.TB, events []Event, tokens []string) {
	t.Helper()
	for _, event := range events {
		event.Check(t, tokens)
	}
}

// Check verifies that this event was recorded and that all of its dependencies
// were recorded before it. Violations are reported as test errors.
func (e Event) Check(t testing.TB, tokens []string) {
	t.Helper()

	eventIndex, ok := e.index(tokens)
	if !ok {
		t.Errorf("event %v was not recorded", e.Token)
		return
	}

	for _, dep := range e.HappensAfter {
		found := false
		for i := 0; i < eventIndex; i++ {
			if tokens[i] == dep {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("event %v: dependency %v was not recorded before it (order: %v)", e.Token, dep, tokens)
		}
	}
}

// Finds the index of this event's token in the given slice of tokens.
func (e Event) index(tokens []string) (index int, found bool) {
	for i, token := range tokens {
		if token == e.Token {
			return i, true
		}
	}
	return 0, false
}
