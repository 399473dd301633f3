package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrAlreadyLiked 重复点赞
var ErrAlreadyLiked = errors.New("already liked")

// ErrNotLiked 未点赞却尝试取消
var ErrNotLiked = errors.New("not liked")

type PostActionRepo interface {
	// RecordView 在同一事务中写入浏览流水并递增计数
	RecordView(ctx context.Context, postID, memberID uint64) error
	// AddLike 在同一事务中写入点赞记录并递增计数
	AddLike(ctx context.Context, memberID, postID uint64) error
	// RemoveLike 在同一事务中删除点赞记录并递减计数
	RemoveLike(ctx context.Context, memberID, postID uint64) error
	CheckLikeExists(ctx context.Context, memberID, postID uint64) (bool, error)
	GetLikedPostIDs(ctx context.Context, memberID uint64, limit, offset int) ([]uint64, error)
	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetViewCountByPostID(ctx context.Context, postID uint64) (int64, error)
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func (s *PostActionRepoImpl) RecordView(ctx context.Context, postID, memberID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		view := &model.PostView{
			PostID:   postID,
			MemberID: memberID,
			ViewedAt: time.Now(),
		}
		if err := tx.Create(view).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Post{}).
			Where("id = ? AND is_deleted = ?", postID, false).
			Update("view_count", gorm.Expr("view_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *PostActionRepoImpl) AddLike(ctx context.Context, memberID, postID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &model.PostLike{
			MemberID:  memberID,
			PostID:    postID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(like).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyLiked
			}
			return err
		}

		result := tx.Model(&model.Post{}).
			Where("id = ? AND is_deleted = ?", postID, false).
			Update("like_count", gorm.Expr("like_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *PostActionRepoImpl) RemoveLike(ctx context.Context, memberID, postID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("member_id = ? AND post_id = ?", memberID, postID).
			Delete(&model.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotLiked
		}

		// like_count > 0 防止计数被减成负数
		return tx.Model(&model.Post{}).
			Where("id = ? AND like_count > 0", postID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
}

func (s *PostActionRepoImpl) CheckLikeExists(ctx context.Context, memberID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("member_id = ? AND post_id = ?", memberID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *PostActionRepoImpl) GetLikedPostIDs(ctx context.Context, memberID uint64, limit, offset int) ([]uint64, error) {
	var postIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Pluck("post_id", &postIDs).Error
	return postIDs, err
}

func (s *PostActionRepoImpl) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) GetViewCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostView{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
