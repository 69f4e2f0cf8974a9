package guarded

import (
	"errors"
	"fmt"
)

// ErrLockMisuse is matched by every *MisuseError.
var ErrLockMisuse = errors.New("lock misuse")

// MisuseError reports a violation of acquire/release discipline: releasing a
// lock that is not held by the caller's handle, or acquiring a lock the same
// owner already holds.
type MisuseError struct {
	Op     string // "acquire" or "release"
	Owner  Owner
	Reason string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("lock misuse: %s by owner %d: %s", e.Op, e.Owner, e.Reason)
}

// Is makes errors.Is(err, ErrLockMisuse) succeed.
func (e *MisuseError) Is(target error) bool {
	return target == ErrLockMisuse
}
