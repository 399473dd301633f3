package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// EngagementPublisher 互动事件发布端，供日指标统计消费
type EngagementPublisher interface {
	PublishView(ctx context.Context, postID uint64)
	PublishLike(ctx context.Context, postID uint64, delta int)
}

type PostService interface {
	CreatePost(ctx context.Context, memberID uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	// GetPostDetail 返回帖子详情，并按去重窗口为本次浏览计数
	GetPostDetail(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error)
	// ToggleLike 点赞/取消点赞切换
	ToggleLike(ctx context.Context, memberID, postID uint64) (*dto.LikeStateDTO, error)
	UpdatePost(ctx context.Context, memberID uint64, req *dto.PostBaseDTO) error
	DeletePost(ctx context.Context, memberID, postID uint64) error
	ListPosts(ctx context.Context, page, pageSize int) (*dto.PageDTO, error)
	ListPostsByMember(ctx context.Context, memberID uint64, page, pageSize int) (*dto.PageDTO, error)
	ListPostsByHashtag(ctx context.Context, hashtagName string, page, pageSize int) (*dto.PageDTO, error)
	GetLikedPosts(ctx context.Context, memberID uint64, page, pageSize int) ([]*dto.PostSummaryDTO, error)
	IsLiked(ctx context.Context, memberID, postID uint64) (bool, error)
}

type postServiceImpl struct {
	postRepo   repository.PostRepo
	actionRepo repository.PostActionRepo
	memberRepo repository.MemberRepo
	tagRepo    repository.HashtagRepo
	dedup      ViewDedupCache
	locker     PairLocker
	publisher  EngagementPublisher
}

func NewPostService(
	postRepo repository.PostRepo,
	actionRepo repository.PostActionRepo,
	memberRepo repository.MemberRepo,
	tagRepo repository.HashtagRepo,
	dedup ViewDedupCache,
	locker PairLocker,
	publisher EngagementPublisher,
) PostService {
	return &postServiceImpl{
		postRepo:   postRepo,
		actionRepo: actionRepo,
		memberRepo: memberRepo,
		tagRepo:    tagRepo,
		dedup:      dedup,
		locker:     locker,
		publisher:  publisher,
	}
}

// viewDedupKey 去重键。匿名浏览共享一个帖子级的键，
// 登录会员各自独立计窗口。
func viewDedupKey(postID, viewerID uint64) string {
	key := consts.PostViewDedupKey + strconv.FormatUint(postID, 10)
	if viewerID == 0 {
		return key
	}
	return key + ":" + strconv.FormatUint(viewerID, 10)
}

func (s *postServiceImpl) CreatePost(ctx context.Context, memberID uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	member, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	hashtags, err := s.resolveHashtags(ctx, req.Content)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		MemberID:       memberID,
		AuthorNickname: member.Nickname,
		Title:          req.Title,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
		ThumbnailURL:   req.ThumbnailURL,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err = s.postRepo.CreatePost(ctx, post, hashtags); err != nil {
		return nil, err
	}

	post.Hashtags = make([]model.Hashtag, 0, len(hashtags))
	for _, h := range hashtags {
		post.Hashtags = append(post.Hashtags, *h)
	}
	return s.toPostDTO(post, member, false), nil
}

func (s *postServiceImpl) GetPostDetail(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	// 携带了身份但会员已不存在时，按匿名浏览处理
	if viewerID != 0 {
		viewer, err := s.memberRepo.GetMemberByID(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		if viewer == nil {
			viewerID = 0
		}
	}

	counted, err := s.countView(ctx, post, viewerID)
	if err != nil {
		// 计数失败不阻断读取
		log.WarnContext(ctx, "帖子浏览计数失败", "postID", postID, "err", err)
	}
	if counted {
		post.ViewCount++
	}

	isLiked := false
	if viewerID != 0 {
		isLiked, _ = s.actionRepo.CheckLikeExists(ctx, viewerID, postID)
	}

	member, err := s.memberRepo.GetMemberByID(ctx, post.MemberID)
	if err != nil {
		return nil, err
	}
	return s.toPostDTO(post, member, isLiked), nil
}

// countView 去重窗口内同一浏览者只计一次。
// 计数事务失败时释放去重键，避免窗口内漏计。
func (s *postServiceImpl) countView(ctx context.Context, post *model.Post, viewerID uint64) (bool, error) {
	key := viewDedupKey(post.ID, viewerID)

	acquired, err := s.dedup.Acquire(ctx, key, consts.ViewDedupWindow)
	if err != nil {
		return false, err
	}
	if !acquired {
		return false, nil
	}

	if err = s.actionRepo.RecordView(ctx, post.ID, viewerID); err != nil {
		if releaseErr := s.dedup.Release(ctx, key); releaseErr != nil {
			log.WarnContext(ctx, "去重键释放失败", "key", key, "err", releaseErr)
		}
		return false, err
	}

	if s.publisher != nil {
		s.publisher.PublishView(ctx, post.ID)
	}
	return true, nil
}

func (s *postServiceImpl) ToggleLike(ctx context.Context, memberID, postID uint64) (*dto.LikeStateDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	lockKey := consts.PostLikeLock + strconv.FormatUint(postID, 10) + ":" + strconv.FormatUint(memberID, 10)
	unlock, ok, err := s.locker.Acquire(ctx, lockKey, 5*time.Second, 3)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrActionConflict
	}
	defer unlock()

	liked, err := s.actionRepo.CheckLikeExists(ctx, memberID, postID)
	if err != nil {
		return nil, err
	}

	delta := 0
	if liked {
		err = s.actionRepo.RemoveLike(ctx, memberID, postID)
		if errors.Is(err, repository.ErrNotLiked) {
			err = nil // 并发下已被取消，结果一致，无增量可发布
		} else {
			delta = -1
		}
	} else {
		err = s.actionRepo.AddLike(ctx, memberID, postID)
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return nil, ErrActionDuplicate
		}
		delta = 1
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if delta != 0 && s.publisher != nil {
		s.publisher.PublishLike(ctx, postID, delta)
	}

	fresh, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || fresh == nil {
		return nil, ErrPostNotFound
	}
	return &dto.LikeStateDTO{
		PostID:    postID,
		LikeCount: fresh.LikeCount,
		IsLiked:   !liked,
	}, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, memberID uint64, req *dto.PostBaseDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrParamInvalid
	}

	post, err := s.postRepo.GetPost(ctx, req.ID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.MemberID != memberID {
		return UnauthorizedError
	}

	hashtags, err := s.resolveHashtags(ctx, req.Content)
	if err != nil {
		return err
	}

	post.Title = req.Title
	post.Content = req.Content
	if req.ImageURL != nil {
		post.ImageURL = req.ImageURL
		post.ThumbnailURL = req.ThumbnailURL
	}
	return s.postRepo.UpdatePost(ctx, post, hashtags)
}

func (s *postServiceImpl) DeletePost(ctx context.Context, memberID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.MemberID != memberID {
		return UnauthorizedError
	}
	return s.postRepo.DeletePost(ctx, postID)
}

func (s *postServiceImpl) ListPosts(ctx context.Context, page, pageSize int) (*dto.PageDTO, error) {
	limit, offset := normalizePage(page, pageSize)
	posts, total, err := s.postRepo.ListPosts(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO{
		Total:    total,
		Page:     page,
		PageSize: limit,
		List:     s.toSummaryDTOs(posts),
	}, nil
}

func (s *postServiceImpl) ListPostsByMember(ctx context.Context, memberID uint64, page, pageSize int) (*dto.PageDTO, error) {
	limit, offset := normalizePage(page, pageSize)
	posts, total, err := s.postRepo.ListPostsByMember(ctx, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO{
		Total:    total,
		Page:     page,
		PageSize: limit,
		List:     s.toSummaryDTOs(posts),
	}, nil
}

func (s *postServiceImpl) ListPostsByHashtag(ctx context.Context, hashtagName string, page, pageSize int) (*dto.PageDTO, error) {
	hashtag, err := s.tagRepo.GetHashtagByName(ctx, hashtagName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.PageDTO{Total: 0, Page: page, PageSize: pageSize, List: []*dto.PostSummaryDTO{}}, nil
		}
		return nil, err
	}

	limit, offset := normalizePage(page, pageSize)
	posts, total, err := s.postRepo.ListPostsByHashtag(ctx, hashtag.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO{
		Total:    total,
		Page:     page,
		PageSize: limit,
		List:     s.toSummaryDTOs(posts),
	}, nil
}

func (s *postServiceImpl) GetLikedPosts(ctx context.Context, memberID uint64, page, pageSize int) ([]*dto.PostSummaryDTO, error) {
	limit, offset := normalizePage(page, pageSize)
	ids, err := s.actionRepo.GetLikedPostIDs(ctx, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*dto.PostSummaryDTO{}, nil
	}
	posts, err := s.postRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.toSummaryDTOs(posts), nil
}

func (s *postServiceImpl) IsLiked(ctx context.Context, memberID, postID uint64) (bool, error) {
	if memberID == 0 {
		return false, nil
	}
	return s.actionRepo.CheckLikeExists(ctx, memberID, postID)
}

func (s *postServiceImpl) resolveHashtags(ctx context.Context, content string) ([]*model.Hashtag, error) {
	names := util.ExtractHashtags(content)
	if len(names) == 0 {
		return nil, nil
	}
	return s.tagRepo.GetOrCreateHashtags(ctx, names)
}

func (s *postServiceImpl) toPostDTO(post *model.Post, member *model.Member, isLiked bool) *dto.PostDTO {
	d := &dto.PostDTO{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		ThumbnailURL: post.ThumbnailURL,
		ViewCount:    post.ViewCount,
		LikeCount:    post.LikeCount,
		Hashtags:     hashtagNames(post.Hashtags),
		IsLiked:      isLiked,
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    post.UpdatedAt.Format(time.RFC3339),
		MemberID:     post.MemberID,
		Nickname:     post.AuthorNickname,
	}
	if member != nil {
		d.Nickname = member.Nickname
		d.AvatarURL = member.AvatarURL
	}
	return d
}

func (s *postServiceImpl) toSummaryDTOs(posts []*model.Post) []*dto.PostSummaryDTO {
	result := make([]*dto.PostSummaryDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, &dto.PostSummaryDTO{
			ID:           post.ID,
			Title:        post.Title,
			ThumbnailURL: post.ThumbnailURL,
			ViewCount:    post.ViewCount,
			LikeCount:    post.LikeCount,
			Hashtags:     hashtagNames(post.Hashtags),
			MemberID:     post.MemberID,
			Nickname:     post.AuthorNickname,
			CreatedAt:    post.CreatedAt.Format(time.RFC3339),
		})
	}
	return result
}

func hashtagNames(hashtags []model.Hashtag) []string {
	names := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		names = append(names, h.Name)
	}
	return names
}

func normalizePage(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}
	return pageSize, (page - 1) * pageSize
}
