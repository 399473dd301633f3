package service

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"context"
)

// DirtySet 计数待校准帖子集合，对账任务消费后移除
type DirtySet interface {
	Add(ctx context.Context, member string) error
	Members(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, member string) error
}

type redisDirtySet struct {
	key string
}

func NewRedisDirtySet() DirtySet {
	return &redisDirtySet{key: consts.PostDirtyKey}
}

func (s *redisDirtySet) Add(ctx context.Context, member string) error {
	return redis.SAddMembers(ctx, s.key, member)
}

func (s *redisDirtySet) Members(ctx context.Context) ([]string, error) {
	return redis.GetSet(ctx, s.key)
}

func (s *redisDirtySet) Remove(ctx context.Context, member string) error {
	return redis.SRemMembers(ctx, s.key, member)
}
