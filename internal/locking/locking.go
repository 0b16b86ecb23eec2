//go:build !deadlock

// Package locking selects the exclusive lock underneath every monitor.
//
// By default it is sync.Mutex. Building with the deadlock tag swaps in
// github.com/sasha-s/go-deadlock, which reports any lock waited on for longer
// than its deadlock timeout. Lock-order detection stays off: the token and
// shared locks of the FIFO primitives are taken in both orders on purpose.
//
//	go test -tags deadlock ./...
package locking

import "sync"

// A Mutex is a mutual exclusion lock.
//
// For full docs see the standard library sync docs.
type Mutex = sync.Mutex

// Enabled reports whether deadlock detection is compiled in.
const Enabled = false
