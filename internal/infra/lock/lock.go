package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired means the lock was still held when the wait ran out.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes work per key. The returned unlock func is safe to call
// more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
