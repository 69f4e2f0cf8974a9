// Package scenario is the driver that runs the recursive chain and the
// threaded increment harness back to back, each on its own guarded.State.
package scenario

import (
	"context"
	"fmt"
	"runtime/trace"

	"github.com/Heman10x-NGU/lockharness/internal/chain"
	"github.com/Heman10x-NGU/lockharness/internal/guarded"
	"github.com/Heman10x-NGU/lockharness/internal/harness"
)

// Config controls one driver run.
type Config struct {
	ChainDepth   int
	ChainInitial int
	ChainRuns    int

	Workers         int
	Limit           int
	ThreadedInitial int
}

// DefaultConfig mirrors the fixtures: f1(5)/f2(5) once, two threads.
func DefaultConfig() Config {
	return Config{
		ChainDepth:   5,
		ChainInitial: 1,
		ChainRuns:    1,
		Workers:      2,
	}
}

// Validate rejects configurations the components cannot run.
func (c Config) Validate() error {
	if c.ChainRuns < 0 {
		return fmt.Errorf("chain runs must be >= 0, got %d", c.ChainRuns)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", c.Limit)
	}
	return nil
}

// ChainReport is the outcome of the chain scenario.
type ChainReport struct {
	Depth           int
	Runs            int
	Initial         int
	Final           int
	Multiplications int
	LockHeld        bool
	Err             error
}

// ThreadedReport is the outcome of the threaded scenario.
type ThreadedReport struct {
	Workers  int
	Limit    int
	Initial  int
	Final    int
	Expected int
	Failures int
	Err      error
}

// OK reports whether every increment landed and no worker failed.
func (r *ThreadedReport) OK() bool {
	return r.Err == nil && r.Final == r.Expected
}

// Report collects both scenarios. Either may be nil if it was not run.
type Report struct {
	Chain    *ChainReport
	Threaded *ThreadedReport
}

// Failed reports whether any scenario ended in an error.
func (r *Report) Failed() bool {
	if r.Chain != nil && r.Chain.Err != nil {
		return true
	}
	return r.Threaded != nil && !r.Threaded.OK()
}

// RunChain runs cfg.ChainRuns descend/ascend pairs on a fresh state. A lock
// misuse stops the remaining runs and is recorded in the report.
func RunChain(ctx context.Context, cfg Config) *ChainReport {
	state := guarded.New(cfg.ChainInitial)
	c := chain.New(state)
	rep := &ChainReport{
		Depth:   cfg.ChainDepth,
		Initial: cfg.ChainInitial,
	}

	trace.WithRegion(ctx, "chain", func() {
		for i := 0; i < cfg.ChainRuns; i++ {
			if err := c.RunPair(cfg.ChainDepth); err != nil {
				rep.Err = fmt.Errorf("run %d: %w", i+1, err)
				break
			}
			rep.Runs++
		}
	})

	rep.Multiplications = c.Multiplications()
	rep.LockHeld = state.Held()
	if rep.LockHeld {
		// Reading under the lock would block forever.
		rep.Final = *state.Raw()
	} else {
		rep.Final = state.Load()
	}
	return rep
}

// RunThreaded runs the harness on a fresh state.
func RunThreaded(ctx context.Context, cfg Config) *ThreadedReport {
	state := guarded.New(cfg.ThreadedInitial)
	h := &harness.Harness{Workers: cfg.Workers, Limit: cfg.Limit}
	rep := &ThreadedReport{
		Workers:  cfg.Workers,
		Limit:    cfg.Limit,
		Initial:  cfg.ThreadedInitial,
		Expected: cfg.ThreadedInitial + cfg.Workers,
	}

	trace.WithRegion(ctx, "threaded", func() {
		res, err := h.Run(state)
		rep.Err = err
		if res != nil {
			rep.Final = res.Final
			rep.Failures = res.Failures
		}
	})
	return rep
}

// RunAll runs the chain scenario and then the threaded scenario.
func RunAll(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Report{
		Chain:    RunChain(ctx, cfg),
		Threaded: RunThreaded(ctx, cfg),
	}, nil
}
