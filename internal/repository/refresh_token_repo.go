package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type RefreshTokenRepo interface {
	CreateToken(ctx context.Context, token *model.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByMemberID(ctx context.Context, memberID uint64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type RefreshTokenRepoImpl struct {
	db *gorm.DB
}

func NewRefreshTokenRepo(db *gorm.DB) RefreshTokenRepo {
	return &RefreshTokenRepoImpl{db: db}
}

func (s *RefreshTokenRepoImpl) CreateToken(ctx context.Context, token *model.RefreshToken) error {
	return s.db.WithContext(ctx).Create(token).Error
}

func (s *RefreshTokenRepoImpl) GetByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	err := s.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&rt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (s *RefreshTokenRepoImpl) DeleteByToken(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.RefreshToken{}).Error
}

// DeleteByMemberID 登出或改密后撤销该会员全部刷新令牌
func (s *RefreshTokenRepoImpl) DeleteByMemberID(ctx context.Context, memberID uint64) error {
	return s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&model.RefreshToken{}).Error
}

func (s *RefreshTokenRepoImpl) DeleteExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.RefreshToken{})
	return result.RowsAffected, result.Error
}
