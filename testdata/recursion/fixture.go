// Package recursion locks m at the bottom of one recursion and unlocks it at
// the bottom of another. The multiplications of n happen outside the lock.
//
// Lock-balance analyzers see f1 return with m held and f2 unlock a mutex it
// never locked; only the f3 call order makes the pair balanced.
package recursion

import "sync"

var (
	n = 0
	m sync.Mutex
)

func f1(i int) {
	if i <= 0 {
		m.Lock() // returns with m held
	} else {
		f1(i - 1)
		n *= i // unguarded
	}
}

func f2(i int) {
	if i <= 0 {
		m.Unlock() // unlocks the lock taken in f1
	} else {
		n *= i // unguarded
		f2(i - 1)
	}
}

func f3() {
	f1(5)
	f2(5)
}
