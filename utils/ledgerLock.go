package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"

	"bitbucket.org/mmdatafocus/stockroom_backend/config"
)

const (
	ledgerLockTTL     = 30 * time.Second
	ledgerLockRetries = 20
)

// LedgerLock serializes stock-mutating workflows on a single distributed
// lock so concurrent commits cannot interleave their row updates with
// their parent-record writes. Callers must release the returned lock.
func LedgerLock(ctx context.Context) (*redislock.Lock, error) {
	locker := config.GetRedisLock()
	lock, err := locker.Obtain(ctx, "stockroom:ledgerLock", ledgerLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(250*time.Millisecond), ledgerLockRetries),
	})
	if err == redislock.ErrNotObtained {
		return nil, fmt.Errorf("ledger is busy, please retry")
	}
	return lock, err
}

func ReleaseLedgerLock(ctx context.Context, lock *redislock.Lock) {
	if lock == nil {
		return
	}
	_ = lock.Release(ctx)
}
