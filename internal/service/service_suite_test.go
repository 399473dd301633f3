package service

import (
	"Inkwell/internal/model"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 基于内存 SQLite 的测试库，每个用例独立一份
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存库限制单连接，多连接会各自持有一份空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Member{},
		&model.Hashtag{},
		&model.Post{},
		&model.PostLike{},
		&model.PostView{},
		&model.Follow{},
		&model.Otp{},
		&model.RefreshToken{},
		&model.PostDailyMetric{},
	))
	return db
}

// memoryDedup 进程内的去重缓存实现，按键记录过期时间
type memoryDedup struct {
	mu   sync.Mutex
	keys map[string]time.Time
}

func newMemoryDedup() *memoryDedup {
	return &memoryDedup{keys: map[string]time.Time{}}
}

func (d *memoryDedup) Acquire(_ context.Context, key string, window time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if expireAt, ok := d.keys[key]; ok && time.Now().Before(expireAt) {
		return false, nil
	}
	d.keys[key] = time.Now().Add(window)
	return true, nil
}

func (d *memoryDedup) Release(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.keys, key)
	return nil
}

// expire 让某个键立即过期，模拟窗口结束
func (d *memoryDedup) expire(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys[key] = time.Now().Add(-time.Second)
}

func (d *memoryDedup) has(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	expireAt, ok := d.keys[key]
	return ok && time.Now().Before(expireAt)
}

func (d *memoryDedup) size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.keys)
}

// memoryLocker busy 为 true 时模拟锁被其他请求占用
type memoryLocker struct {
	busy bool
}

func (l *memoryLocker) Acquire(context.Context, string, time.Duration, int) (func(), bool, error) {
	if l.busy {
		return nil, false, nil
	}
	return func() {}, true, nil
}

// countingLocker 沿用 redis.TryLock 的语义：retryTimes 为 0 时
// 一次尝试都不会发生，记录入参供断言
type countingLocker struct {
	lastRetryTimes int
	calls          int
}

func (l *countingLocker) Acquire(_ context.Context, _ string, _ time.Duration, retryTimes int) (func(), bool, error) {
	l.calls++
	l.lastRetryTimes = retryTimes
	if retryTimes == 0 {
		return nil, false, nil
	}
	return func() {}, true, nil
}

// memoryDirtySet 进程内的待对账集合实现
type memoryDirtySet struct {
	mu      sync.Mutex
	members map[string]struct{}
}

func newMemoryDirtySet() *memoryDirtySet {
	return &memoryDirtySet{members: map[string]struct{}{}}
}

func (s *memoryDirtySet) Add(_ context.Context, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member] = struct{}{}
	return nil
}

func (s *memoryDirtySet) Members(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	return out, nil
}

func (s *memoryDirtySet) Remove(_ context.Context, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, member)
	return nil
}

func (s *memoryDirtySet) contains(member string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[member]
	return ok
}

func (s *memoryDirtySet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

type likeEvent struct {
	postID uint64
	delta  int
}

// capturingPublisher 记录发布的互动事件供断言
type capturingPublisher struct {
	mu    sync.Mutex
	views []uint64
	likes []likeEvent
}

func (p *capturingPublisher) PublishView(_ context.Context, postID uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, postID)
}

func (p *capturingPublisher) PublishLike(_ context.Context, postID uint64, delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.likes = append(p.likes, likeEvent{postID: postID, delta: delta})
}

func seedMember(t *testing.T, db *gorm.DB, email, nickname string) *model.Member {
	t.Helper()
	member := &model.Member{
		Email:     email,
		Password:  "hashed",
		Nickname:  nickname,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedPost(t *testing.T, db *gorm.DB, memberID uint64, title string) *model.Post {
	t.Helper()
	post := &model.Post{
		MemberID:       memberID,
		AuthorNickname: "author",
		Title:          title,
		Content:        "content",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
