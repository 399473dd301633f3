package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetValue 设置键值对
func SetValue(ctx context.Context, key string, value interface{}) error {
	return Rdb.Set(ctx, key, value, 0).Err()
}

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// SetNXWithExpiration 仅当键不存在时写入，返回是否写入成功
func SetNXWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return Rdb.SetNX(ctx, key, value, expiration).Result()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// IncrWithExpiration 自增计数器，首次创建时设置过期时间
func IncrWithExpiration(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	count, err := Rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		Rdb.Expire(ctx, key, expiration)
	}
	return count, nil
}

// TryLock 尝试获取分布式锁，retryTimes 为 -1 时无限重试
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		time.Sleep(time.Millisecond * 200)
	}
	return false, nil
}

// UnLock 释放锁
func UnLock(ctx context.Context, key string, value interface{}) {
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// SAddMembers 向集合中添加成员
func SAddMembers(ctx context.Context, key string, members ...interface{}) error {
	return Rdb.SAdd(ctx, key, members...).Err()
}

// GetSet 获取集合全部成员
func GetSet(ctx context.Context, key string) ([]string, error) {
	value, err := Rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return value, nil
}

// SRemMembers 从集合中移除成员
func SRemMembers(ctx context.Context, key string, members ...interface{}) error {
	return Rdb.SRem(ctx, key, members...).Err()
}

func Rename(ctx context.Context, oldKey string, newKey string) error {
	return Rdb.Rename(ctx, oldKey, newKey).Err()
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}

// GetRdbClient 获取redis客户端
func GetRdbClient() *redis.Client {
	return Rdb
}
