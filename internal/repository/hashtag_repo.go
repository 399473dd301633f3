package repository

import (
	"Inkwell/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagRepo interface {
	GetOrCreateHashtags(ctx context.Context, names []string) ([]*model.Hashtag, error)
	GetHashtagByName(ctx context.Context, name string) (*model.Hashtag, error)
}

type hashtagRepoImpl struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepo {
	return &hashtagRepoImpl{
		db: db,
	}
}

func (s *hashtagRepoImpl) GetOrCreateHashtags(ctx context.Context, names []string) ([]*model.Hashtag, error) {
	// 创建所有标签，使用 OnConflict DoNothing 避免重复创建
	for _, name := range names {
		hashtag := model.Hashtag{
			Name:      name,
			CreatedAt: time.Now(),
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&hashtag).Error
		if err != nil {
			return nil, err
		}
	}

	var hashtags []*model.Hashtag
	err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&hashtags).Error
	if err != nil {
		return nil, err
	}

	return hashtags, nil
}

func (s *hashtagRepoImpl) GetHashtagByName(ctx context.Context, name string) (*model.Hashtag, error) {
	var hashtag model.Hashtag
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&hashtag).Error
	if err != nil {
		return nil, err
	}
	return &hashtag, nil
}
