//go:build deadlock

// Package syncutil provides the mutex type backing guarded state.
// Build with -tags=deadlock to swap in github.com/sasha-s/go-deadlock.
package syncutil

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockEnabled reports whether the go-deadlock detector is compiled in.
const DeadlockEnabled = true

func init() {
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
}

// Mutex wraps deadlock.Mutex, which reports recursive locking and locks held
// past DeadlockTimeout.
type Mutex struct {
	deadlock.Mutex
}
