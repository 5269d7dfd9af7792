package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSyncInProgress is returned when another sync run holds the lock.
var ErrSyncInProgress = errors.New("sync already in progress")

const (
	syncLockKey = "inventory:sync:lock"
	// TTL bounds how long a crashed run can starve subsequent syncs.
	syncLockTTL = 5 * time.Minute
)

// SyncLocker is an advisory mutex around pull/full sync runs so two admin
// triggers can't interleave writes to the same products.
type SyncLocker interface {
	Acquire(ctx context.Context) error
	Release(ctx context.Context)
}

type redisSyncLock struct {
	rdb *redis.Client
}

func NewSyncLock(rdb *redis.Client) SyncLocker {
	return &redisSyncLock{rdb: rdb}
}

func (l *redisSyncLock) Acquire(ctx context.Context) error {
	ok, err := l.rdb.SetNX(ctx, syncLockKey, time.Now().Format(time.RFC3339), syncLockTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrSyncInProgress
	}
	return nil
}

func (l *redisSyncLock) Release(ctx context.Context) {
	l.rdb.Del(ctx, syncLockKey)
}
