// Package guarded provides an integer protected by a non-reentrant mutex.
//
// Guarded read-modify-write goes through WithLock. The explicit Acquire and
// Release pair exists for callers that lock and unlock at different call
// sites; it tracks the current holder so misuse surfaces as a *MisuseError
// instead of undefined behavior.
package guarded

import (
	"sync"
	"sync/atomic"

	"github.com/Heman10x-NGU/lockharness/internal/syncutil"
)

// Owner identifies a logical lock holder for Acquire/Release.
// The zero Owner is anonymous and cannot call Acquire.
type Owner uint64

var lastOwner atomic.Uint64

// NewOwner returns a fresh, process-unique Owner.
func NewOwner() Owner {
	return Owner(lastOwner.Add(1))
}

// LockHandle is the token for one successful Acquire. It is consumed by
// exactly one Release.
type LockHandle struct {
	owner Owner
	seq   uint64
}

// Owner returns the owner that acquired the handle.
func (h *LockHandle) Owner() Owner { return h.owner }

// State is an int guarded by a mutex. The zero value is not usable; call New.
type State struct {
	mu syncutil.Mutex

	// meta guards the bookkeeping below; it is never held while blocking on mu.
	meta   sync.Mutex
	holder Owner
	cur    *LockHandle
	seq    uint64

	value int
}

// New returns an unlocked State holding initial.
func New(initial int) *State {
	return &State{value: initial}
}

// WithLock runs op on the protected value while holding the lock and returns
// its result. The lock is released on every exit path, including a panic in
// op, which is re-raised after the unlock.
func WithLock[T any](s *State, op func(v *int) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return op(&s.value)
}

// Update applies fn to the protected value under the lock.
func (s *State) Update(fn func(v *int)) {
	WithLock(s, func(v *int) struct{} {
		fn(v)
		return struct{}{}
	})
}

// Load returns the protected value, read under the lock.
func (s *State) Load() int {
	return WithLock(s, func(v *int) int { return *v })
}

// Acquire locks s on behalf of owner, blocking while any other holder has it.
// Acquiring again with an owner that already holds s is a misuse error, not a
// self-deadlock. The zero Owner is rejected since re-acquisition by it could
// not be detected.
func (s *State) Acquire(owner Owner) (*LockHandle, error) {
	if owner == 0 {
		return nil, &MisuseError{Op: "acquire", Reason: "anonymous owner; use NewOwner"}
	}
	s.meta.Lock()
	if s.cur != nil && s.holder == owner {
		s.meta.Unlock()
		return nil, &MisuseError{Op: "acquire", Owner: owner, Reason: "already held by this owner"}
	}
	s.meta.Unlock()

	s.mu.Lock()

	s.meta.Lock()
	defer s.meta.Unlock()
	s.seq++
	h := &LockHandle{owner: owner, seq: s.seq}
	s.holder = owner
	s.cur = h
	return h, nil
}

// Release unlocks s. h must be the handle returned by the outstanding Acquire;
// a nil, stale, or foreign handle is a misuse error and leaves s untouched.
func (s *State) Release(h *LockHandle) error {
	s.meta.Lock()
	if h == nil {
		s.meta.Unlock()
		return &MisuseError{Op: "release", Reason: "no handle: lock was never acquired"}
	}
	if s.cur != h {
		s.meta.Unlock()
		reason := "handle already released"
		if s.cur != nil {
			reason = "lock is held by another acquisition"
		}
		return &MisuseError{Op: "release", Owner: h.owner, Reason: reason}
	}
	s.cur = nil
	s.holder = 0
	s.meta.Unlock()

	s.mu.Unlock()
	return nil
}

// Held reports whether an explicit Acquire is outstanding. Locks taken by
// WithLock are not reported.
func (s *State) Held() bool {
	s.meta.Lock()
	defer s.meta.Unlock()
	return s.cur != nil
}

// Raw returns a pointer to the protected value without taking the lock.
// Writes through it are only safe from the goroutine that currently holds s
// or when no other goroutine can reach s.
func (s *State) Raw() *int {
	return &s.value
}
