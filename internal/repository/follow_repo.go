package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type FollowRepo interface {
	// CreateFollow 在同一事务中写入关注关系并维护双方计数
	CreateFollow(ctx context.Context, followerID, followingID uint64) error
	// DeleteFollow 在同一事务中删除关注关系并维护双方计数
	DeleteFollow(ctx context.Context, followerID, followingID uint64) error
	CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowers(ctx context.Context, memberID uint64, limit, offset int) ([]*model.Follow, error)
	GetFollowing(ctx context.Context, memberID uint64, limit, offset int) ([]*model.Follow, error)
	GetFollowerCount(ctx context.Context, memberID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, memberID uint64) (int64, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

func (s *FollowRepoImpl) CreateFollow(ctx context.Context, followerID, followingID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follow := &model.Follow{
			FollowerID:  followerID,
			FollowingID: followingID,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(follow).Error; err != nil {
			if isDuplicateKey(err) {
				return nil // 重复关注视为幂等
			}
			return err
		}

		if err := tx.Model(&model.Member{}).
			Where("id = ?", followingID).
			Update("follower_count", gorm.Expr("follower_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.Member{}).
			Where("id = ?", followerID).
			Update("following_count", gorm.Expr("following_count + 1")).Error
	})
}

func (s *FollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followingID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&model.Follow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil // 未关注时取消视为幂等
		}

		if err := tx.Model(&model.Member{}).
			Where("id = ? AND follower_count > 0", followingID).
			Update("follower_count", gorm.Expr("follower_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.Member{}).
			Where("id = ? AND following_count > 0", followerID).
			Update("following_count", gorm.Expr("following_count - 1")).Error
	})
}

func (s *FollowRepoImpl) CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

// GetFollowers 获取会员的粉丝列表
func (s *FollowRepoImpl) GetFollowers(ctx context.Context, memberID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	result := s.db.WithContext(ctx).
		Where("following_id = ?", memberID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&follows)

	if result.Error != nil {
		return nil, result.Error
	}
	return follows, nil
}

// GetFollowing 获取会员的关注列表
func (s *FollowRepoImpl) GetFollowing(ctx context.Context, memberID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	result := s.db.WithContext(ctx).
		Where("follower_id = ?", memberID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&follows)

	if result.Error != nil {
		return nil, result.Error
	}
	return follows, nil
}

func (s *FollowRepoImpl) GetFollowerCount(ctx context.Context, memberID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", memberID).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *FollowRepoImpl) GetFollowingCount(ctx context.Context, memberID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", memberID).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
