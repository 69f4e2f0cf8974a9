// Package chain reproduces a lock acquired at the deepest frame of one
// recursion and released at the deepest frame of another.
//
// Descend locks at depth 0 and multiplies the accumulator while unwinding;
// Ascend multiplies on the way down and unlocks at depth 0. The
// multiplications go through guarded.State.Raw and never take the lock: they
// run on a single call stack, and the unguarded access is the pattern
// consumers of these fixtures look for.
package chain

import (
	"fmt"

	"github.com/Heman10x-NGU/lockharness/internal/guarded"
)

// Chain is one descend/ascend pair over a shared accumulator.
// A Chain is not safe for concurrent use.
type Chain struct {
	state  *guarded.State
	owner  guarded.Owner
	handle *guarded.LockHandle

	mults int
}

// New returns a Chain that uses state as both the lock and the accumulator.
func New(state *guarded.State) *Chain {
	return &Chain{
		state: state,
		owner: guarded.NewOwner(),
	}
}

// Descend recurses to depth 0, acquires the lock there, then multiplies the
// accumulator by i on the way back up. The lock stays held on return.
func (c *Chain) Descend(i int) error {
	if i <= 0 {
		h, err := c.state.Acquire(c.owner)
		if err != nil {
			return fmt.Errorf("descend: %w", err)
		}
		c.handle = h
		return nil
	}
	if err := c.Descend(i - 1); err != nil {
		return err
	}
	c.multiply(i)
	return nil
}

// Ascend multiplies the accumulator by i, then recurses, releasing the lock at
// depth 0. Releasing without a prior Descend fails with guarded.ErrLockMisuse.
func (c *Chain) Ascend(i int) error {
	if i <= 0 {
		if err := c.state.Release(c.handle); err != nil {
			return fmt.Errorf("ascend: %w", err)
		}
		c.handle = nil
		return nil
	}
	c.multiply(i)
	return c.Ascend(i - 1)
}

// RunPair runs Descend(depth) then Ascend(depth). On success the lock is
// released again.
func (c *Chain) RunPair(depth int) error {
	if err := c.Descend(depth); err != nil {
		return err
	}
	return c.Ascend(depth)
}

// Multiplications returns how many unguarded multiplications the chain has
// performed.
func (c *Chain) Multiplications() int { return c.mults }

// Accumulator reads the accumulator under the lock. It blocks while the
// chain is between Descend and Ascend.
func (c *Chain) Accumulator() int { return c.state.Load() }

func (c *Chain) multiply(i int) {
	// Unguarded on purpose.
	*c.state.Raw() *= i
	c.mults++
}
