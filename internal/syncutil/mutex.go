//go:build !deadlock

// Package syncutil provides the mutex type backing guarded state.
// Build with -tags=deadlock to swap in github.com/sasha-s/go-deadlock.
package syncutil

import "sync"

// DeadlockEnabled reports whether the go-deadlock detector is compiled in.
const DeadlockEnabled = false

// Mutex wraps sync.Mutex.
type Mutex struct {
	sync.Mutex
}
