package service

import (
	"Inkwell/internal/pkg/redis"
	"context"
	"time"

	"github.com/google/uuid"
)

// ViewDedupCache 浏览去重缓存。Acquire 原子性地占用去重键，
// 键已存在时返回 false，表示该浏览者在窗口内已被计数。
type ViewDedupCache interface {
	Acquire(ctx context.Context, key string, window time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// PairLocker 细粒度互斥锁，用于串行化同一 (帖子, 会员) 的点赞切换
type PairLocker interface {
	// Acquire 成功时返回解锁函数，锁被占用时 ok 为 false
	Acquire(ctx context.Context, key string, ttl time.Duration, retryTimes int) (unlock func(), ok bool, err error)
}

type redisViewDedupCache struct{}

func NewRedisViewDedupCache() ViewDedupCache {
	return &redisViewDedupCache{}
}

func (c *redisViewDedupCache) Acquire(ctx context.Context, key string, window time.Duration) (bool, error) {
	return redis.SetNXWithExpiration(ctx, key, "1", window)
}

func (c *redisViewDedupCache) Release(ctx context.Context, key string) error {
	return redis.DeleteKey(ctx, key)
}

type redisPairLocker struct{}

func NewRedisPairLocker() PairLocker {
	return &redisPairLocker{}
}

func (l *redisPairLocker) Acquire(ctx context.Context, key string, ttl time.Duration, retryTimes int) (func(), bool, error) {
	lockUUID := uuid.New().String()
	ok, err := redis.TryLock(ctx, key, lockUUID, ttl, retryTimes)
	if err != nil || !ok {
		return nil, false, err
	}
	return func() {
		redis.UnLock(ctx, key, lockUUID)
	}, true, nil
}
