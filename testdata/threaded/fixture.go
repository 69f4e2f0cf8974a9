// Package threaded has two goroutines incrementing n1 under numMutex.
package threaded

import "sync"

var (
	n1       = 0
	numMutex sync.Mutex
)

func inc() int {
	n1 = n1 + 1
	if n1 != 0 {
		return n1
	}
	return n1 + 1
}

func f1() {
	numMutex.Lock()
	inc()
	numMutex.Unlock()
}

func tFun(wg *sync.WaitGroup) {
	defer wg.Done()
	f1()
}

func run() int {
	var wg sync.WaitGroup
	wg.Add(2)
	go tFun(&wg)
	go tFun(&wg)
	wg.Wait()
	return n1
}
