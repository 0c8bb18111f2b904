package usecases

import (
	"context"
	"fmt"
	"time"

	"mealsub/internal/shared/biztime"
)

// MutationLocker serializes writers on one key across processes. TryLock
// reports acquired=false without error when another holder owns the key.
type MutationLocker interface {
	TryLock(ctx context.Context, key string) (release func(context.Context) error, acquired bool, err error)
}

// NoteSanitizer strips markup from free-text notes before they are stored.
type NoteSanitizer interface {
	Sanitize(s string) string
}

// Clock returns the current instant. Swapped in tests.
type Clock func() time.Time

func defaultClock() time.Time {
	return biztime.NowUTC()
}

func createLockKey(userID uint) string {
	return fmt.Sprintf("mealsub:lock:create:user:%d", userID)
}

func deliveryLockKey(sid string) string {
	return "mealsub:lock:deliver:" + sid
}
