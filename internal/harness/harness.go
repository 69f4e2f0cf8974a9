// Package harness runs a fixed number of goroutines that each perform one
// guarded increment on a shared guarded.State, then joins them.
package harness

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Heman10x-NGU/lockharness/internal/guarded"
)

// ErrWorkerFailed is matched by every *WorkerFailure.
var ErrWorkerFailed = errors.New("worker failed")

// WorkerFailure records a worker that panicked inside its operation.
type WorkerFailure struct {
	Worker int
	Cause  any
}

func (e *WorkerFailure) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.Worker, e.Cause)
}

// Is makes errors.Is(err, ErrWorkerFailed) succeed.
func (e *WorkerFailure) Is(target error) bool {
	return target == ErrWorkerFailed
}

// Unwrap exposes Cause when the worker panicked with an error value.
func (e *WorkerFailure) Unwrap() error {
	err, _ := e.Cause.(error)
	return err
}

// Op is the critical section each worker runs once under the lock.
type Op func(v *int) int

// Increment bumps the value by one. It returns the pre-increment value when
// that was non-zero and the new value otherwise; the mutation is the same on
// both branches.
func Increment(v *int) int {
	pre := *v
	*v = pre + 1
	if pre != 0 {
		return pre
	}
	return *v
}

// Harness configures one threaded run.
type Harness struct {
	// Workers is the number of goroutines to start; each runs Op once.
	Workers int
	// Limit caps how many workers run at once. Zero means no cap.
	Limit int
	// Op defaults to Increment.
	Op Op
}

// Result describes a completed run.
type Result struct {
	Workers int
	Initial int
	Final   int
	// Returned holds each worker's Op result, indexed by worker. Failed
	// workers leave a zero.
	Returned []int
	Failures int
}

// Run starts h.Workers goroutines against state and waits for all of them.
// Worker panics are recovered, the lock is released by guarded.WithLock, and
// every failure is returned together once all workers are done. There is no
// cancellation: a worker that never returns blocks Run forever.
func (h *Harness) Run(state *guarded.State) (*Result, error) {
	if h.Workers < 0 {
		return nil, fmt.Errorf("worker count must be >= 0, got %d", h.Workers)
	}
	op := h.Op
	if op == nil {
		op = Increment
	}

	res := &Result{
		Workers:  h.Workers,
		Initial:  state.Load(),
		Returned: make([]int, h.Workers),
	}
	if h.Workers == 0 {
		res.Final = res.Initial
		return res, nil
	}

	failures := make([]error, h.Workers)

	var g errgroup.Group
	if h.Limit > 0 {
		g.SetLimit(h.Limit)
	}
	for i := 0; i < h.Workers; i++ {
		g.Go(func() error {
			ret, err := runWorker(i, state, op)
			if err != nil {
				failures[i] = err
				return nil
			}
			res.Returned[i] = ret
			return nil
		})
	}
	// Workers never return errors to the group, so every one is waited for.
	_ = g.Wait()

	res.Final = state.Load()
	for _, f := range failures {
		if f != nil {
			res.Failures++
		}
	}
	return res, errors.Join(failures...)
}

func runWorker(id int, state *guarded.State, op Op) (ret int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerFailure{Worker: id, Cause: r}
		}
	}()
	return guarded.WithLock[int](state, op), nil
}

// Run starts workerCount goroutines that each increment state once and
// returns the value after all of them finished.
func Run(workerCount int, state *guarded.State) (int, error) {
	res, err := (&Harness{Workers: workerCount}).Run(state)
	if res == nil {
		return 0, err
	}
	return res.Final, err
}
