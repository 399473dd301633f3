package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post, hashtags []*model.Hashtag) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post, hashtags []*model.Hashtag) error
	DeletePost(ctx context.Context, id uint64) error
	ListPosts(ctx context.Context, limit, offset int) ([]*model.Post, int64, error)
	ListPostsByMember(ctx context.Context, memberID uint64, limit, offset int) ([]*model.Post, int64, error)
	ListPostsByHashtag(ctx context.Context, hashtagID uint64, limit, offset int) ([]*model.Post, int64, error)
	UpdateAuthorNickname(ctx context.Context, memberID uint64, nickname string) error
	SetCounters(ctx context.Context, postID uint64, viewCount, likeCount int64) error
	ListPostIDs(ctx context.Context, limit, offset int) ([]uint64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, hashtags []*model.Hashtag) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Hashtags").Create(post).Error; err != nil {
			return err
		}
		if len(hashtags) > 0 {
			if err := tx.Model(post).Association("Hashtags").Append(hashtags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Hashtags").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Preload("Hashtags").
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post, hashtags []*model.Hashtag) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		}
		if post.ImageURL != nil {
			updates["image_url"] = post.ImageURL
			updates["thumbnail_url"] = post.ThumbnailURL
		}
		if err := tx.Model(&model.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
			return err
		}
		// 全量替换标签关联
		if err := tx.Model(post).Association("Hashtags").Replace(hashtags); err != nil {
			return err
		}
		return nil
	})
}

// DeletePost 软删除，保留浏览与点赞流水
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true).Error
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, limit, offset int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Post{}).Where("is_deleted = ?", false)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Hashtags").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostRepoImpl) ListPostsByMember(ctx context.Context, memberID uint64, limit, offset int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("member_id = ? AND is_deleted = ?", memberID, false)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Hashtags").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostRepoImpl) ListPostsByHashtag(ctx context.Context, hashtagID uint64, limit, offset int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	base := s.db.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
		Where("post_hashtags.hashtag_id = ? AND posts.is_deleted = ?", hashtagID, false)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Preload("Hashtags").
		Order("posts.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpdateAuthorNickname 会员改昵称后同步帖子上的昵称快照
func (s *PostRepoImpl) UpdateAuthorNickname(ctx context.Context, memberID uint64, nickname string) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("member_id = ?", memberID).
		Update("author_nickname", nickname).Error
}

// SetCounters 对账任务用，以流水表为准回写计数
func (s *PostRepoImpl) SetCounters(ctx context.Context, postID uint64, viewCount, likeCount int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"view_count": viewCount,
			"like_count": likeCount,
		}).Error
}

func (s *PostRepoImpl) ListPostIDs(ctx context.Context, limit, offset int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("is_deleted = ?", false).
		Order("id ASC").
		Limit(limit).Offset(offset).
		Pluck("id", &ids).Error
	return ids, err
}
