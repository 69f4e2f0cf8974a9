//go:build !deadlock

package syncutil

import "testing"

// TestMutex checks the default build wraps sync.Mutex.
func TestMutex(t *testing.T) {
	if DeadlockEnabled {
		t.Fatal("DeadlockEnabled in a build without the deadlock tag")
	}
	var mu Mutex
	mu.Lock()
	if mu.TryLock() {
		t.Fatal("TryLock succeeded on a locked Mutex")
	}
	mu.Unlock()
	if !mu.TryLock() {
		t.Fatal("TryLock failed on an unlocked Mutex")
	}
	mu.Unlock()
}
