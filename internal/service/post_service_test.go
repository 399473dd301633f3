package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type postEnv struct {
	db         *gorm.DB
	dedup      *memoryDedup
	locker     *memoryLocker
	pub        *capturingPublisher
	postRepo   repository.PostRepo
	actionRepo repository.PostActionRepo
	memberRepo repository.MemberRepo
	tagRepo    repository.HashtagRepo
	svc        PostService
}

func newPostEnv(t *testing.T) *postEnv {
	t.Helper()
	env := &postEnv{
		db:     newTestDB(t),
		dedup:  newMemoryDedup(),
		locker: &memoryLocker{},
		pub:    &capturingPublisher{},
	}
	env.postRepo = repository.NewPostRepository(env.db)
	env.actionRepo = repository.NewPostActionRepo(env.db)
	env.memberRepo = repository.NewMemberRepository(env.db)
	env.tagRepo = repository.NewHashtagRepository(env.db)
	env.svc = NewPostService(env.postRepo, env.actionRepo, env.memberRepo, env.tagRepo, env.dedup, env.locker, env.pub)
	return env
}

func (e *postEnv) viewCount(t *testing.T, postID uint64) int {
	t.Helper()
	var post model.Post
	require.NoError(t, e.db.First(&post, postID).Error)
	return post.ViewCount
}

func (e *postEnv) viewRows(t *testing.T, postID uint64) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&model.PostView{}).Where("post_id = ?", postID).Count(&count).Error)
	return count
}

func TestGetPostDetailCountsOncePerWindow(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	viewer := seedMember(t, env.db, "viewer@test.com", "viewer")
	post := seedPost(t, env.db, author.ID, "hello")

	for i := 0; i < 3; i++ {
		detail, err := env.svc.GetPostDetail(ctx, viewer.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, detail.ViewCount)
	}

	assert.Equal(t, 1, env.viewCount(t, post.ID))
	assert.EqualValues(t, 1, env.viewRows(t, post.ID))
	assert.Len(t, env.pub.views, 1)
}

func TestGetPostDetailConcurrentSingleIncrement(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	viewer := seedMember(t, env.db, "viewer@test.com", "viewer")
	post := seedPost(t, env.db, author.ID, "hello")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.GetPostDetail(ctx, viewer.ID, post.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// 去重键原子占用，窗口内并发浏览只计一次
	assert.Equal(t, 1, env.viewCount(t, post.ID))
	assert.EqualValues(t, 1, env.viewRows(t, post.ID))
}

func TestGetPostDetailCountsAgainAfterWindow(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	viewer := seedMember(t, env.db, "viewer@test.com", "viewer")
	post := seedPost(t, env.db, author.ID, "hello")

	_, err := env.svc.GetPostDetail(ctx, viewer.ID, post.ID)
	require.NoError(t, err)

	env.dedup.expire(viewDedupKey(post.ID, viewer.ID))

	detail, err := env.svc.GetPostDetail(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.ViewCount)
	assert.EqualValues(t, 2, env.viewRows(t, post.ID))
}

func TestGetPostDetailAnonymousAndMemberCountSeparately(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	viewer := seedMember(t, env.db, "viewer@test.com", "viewer")
	post := seedPost(t, env.db, author.ID, "hello")

	_, err := env.svc.GetPostDetail(ctx, 0, post.ID)
	require.NoError(t, err)
	_, err = env.svc.GetPostDetail(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	// 窗口内的第二次匿名浏览不再计数
	_, err = env.svc.GetPostDetail(ctx, 0, post.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, env.viewCount(t, post.ID))
	assert.EqualValues(t, 2, env.viewRows(t, post.ID))
}

func TestGetPostDetailUnknownViewerFallsBackToAnonymous(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	post := seedPost(t, env.db, author.ID, "hello")

	_, err := env.svc.GetPostDetail(ctx, 9999, post.ID)
	require.NoError(t, err)

	var view model.PostView
	require.NoError(t, env.db.Where("post_id = ?", post.ID).First(&view).Error)
	assert.EqualValues(t, 0, view.MemberID)
	assert.True(t, env.dedup.has(viewDedupKey(post.ID, 0)))

	// 与后续真实匿名浏览共用同一窗口
	_, err = env.svc.GetPostDetail(ctx, 0, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, env.viewCount(t, post.ID))
}

func TestGetPostDetailNotFoundHasNoSideEffects(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	_, err := env.svc.GetPostDetail(ctx, 0, 404)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, 0, env.dedup.size())

	var count int64
	require.NoError(t, env.db.Model(&model.PostView{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.Empty(t, env.pub.views)
}

type failingViewRepo struct {
	repository.PostActionRepo
}

func (r *failingViewRepo) RecordView(context.Context, uint64, uint64) error {
	return errors.New("db down")
}

func TestGetPostDetailReleasesDedupKeyOnCountFailure(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	viewer := seedMember(t, env.db, "viewer@test.com", "viewer")
	post := seedPost(t, env.db, author.ID, "hello")

	svc := NewPostService(env.postRepo, &failingViewRepo{env.actionRepo}, env.memberRepo, env.tagRepo, env.dedup, env.locker, env.pub)

	// 计数失败不影响读取，去重键被释放，下次浏览仍可计数
	detail, err := svc.GetPostDetail(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, detail.ViewCount)
	assert.False(t, env.dedup.has(viewDedupKey(post.ID, viewer.ID)))
	assert.Empty(t, env.pub.views)

	detail, err = env.svc.GetPostDetail(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.ViewCount)
}

func TestToggleLike(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	liker := seedMember(t, env.db, "liker@test.com", "liker")
	post := seedPost(t, env.db, author.ID, "hello")

	state, err := env.svc.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, state.IsLiked)
	assert.Equal(t, 1, state.LikeCount)

	liked, err := env.svc.IsLiked(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	state, err = env.svc.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, state.IsLiked)
	assert.Equal(t, 0, state.LikeCount)

	require.Len(t, env.pub.likes, 2)
	assert.Equal(t, 1, env.pub.likes[0].delta)
	assert.Equal(t, -1, env.pub.likes[1].delta)
}

func TestToggleLikeParity(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	liker := seedMember(t, env.db, "liker@test.com", "liker")
	post := seedPost(t, env.db, author.ID, "hello")

	// 多次切换后计数与点赞记录始终一致
	for i := 0; i < 5; i++ {
		state, err := env.svc.ToggleLike(ctx, liker.ID, post.ID)
		require.NoError(t, err)

		liked, err := env.actionRepo.CheckLikeExists(ctx, liker.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, liked, state.IsLiked)
		if liked {
			assert.Equal(t, 1, state.LikeCount)
		} else {
			assert.Equal(t, 0, state.LikeCount)
		}
	}
}

type notLikedRepo struct {
	repository.PostActionRepo
}

func (r *notLikedRepo) RemoveLike(context.Context, uint64, uint64) error {
	return repository.ErrNotLiked
}

func TestToggleLikeNoOpCancelPublishesNothing(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	liker := seedMember(t, env.db, "liker@test.com", "liker")
	post := seedPost(t, env.db, author.ID, "hello")

	require.NoError(t, env.actionRepo.AddLike(ctx, liker.ID, post.ID))

	// 取消时记录已不在，结果一致，不应发布 -1 增量
	svc := NewPostService(env.postRepo, &notLikedRepo{env.actionRepo}, env.memberRepo, env.tagRepo, env.dedup, env.locker, env.pub)
	state, err := svc.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, state.IsLiked)
	assert.Empty(t, env.pub.likes)
}

func TestToggleLikeLockBusy(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	post := seedPost(t, env.db, author.ID, "hello")

	env.locker.busy = true
	_, err := env.svc.ToggleLike(ctx, author.ID, post.ID)
	assert.ErrorIs(t, err, ErrActionConflict)
}

func TestToggleLikePostNotFound(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	member := seedMember(t, env.db, "liker@test.com", "liker")
	_, err := env.svc.ToggleLike(ctx, member.ID, 404)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreatePostExtractsHashtags(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")

	detail, err := env.svc.CreatePost(ctx, author.ID, &dto.PostBaseDTO{
		Title:   "hello",
		Content: "learning #go and #redis, more #go",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "redis"}, detail.Hashtags)
	assert.Equal(t, "author", detail.Nickname)

	page, err := env.svc.ListPostsByHashtag(ctx, "go", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestUpdatePostOwnership(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	author := seedMember(t, env.db, "author@test.com", "author")
	other := seedMember(t, env.db, "other@test.com", "other")
	post := seedPost(t, env.db, author.ID, "hello")

	err := env.svc.UpdatePost(ctx, other.ID, &dto.PostBaseDTO{
		ID:      post.ID,
		Title:   "hacked",
		Content: "hacked",
	})
	assert.ErrorIs(t, err, UnauthorizedError)

	err = env.svc.DeletePost(ctx, other.ID, post.ID)
	assert.ErrorIs(t, err, UnauthorizedError)

	require.NoError(t, env.svc.DeletePost(ctx, author.ID, post.ID))
	_, err = env.svc.GetPostDetail(ctx, 0, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPostsByHashtagUnknownTag(t *testing.T) {
	env := newPostEnv(t)
	ctx := context.Background()

	page, err := env.svc.ListPostsByHashtag(ctx, "missing", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}
