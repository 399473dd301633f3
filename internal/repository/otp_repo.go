package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type OtpRepo interface {
	CreateOtp(ctx context.Context, otp *model.Otp) error
	GetLatestValidOtp(ctx context.Context, email string) (*model.Otp, error)
	MarkUsed(ctx context.Context, id uint64) error
	InvalidateByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type OtpRepoImpl struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) OtpRepo {
	return &OtpRepoImpl{db: db}
}

func (s *OtpRepoImpl) CreateOtp(ctx context.Context, otp *model.Otp) error {
	return s.db.WithContext(ctx).Create(otp).Error
}

func (s *OtpRepoImpl) GetLatestValidOtp(ctx context.Context, email string) (*model.Otp, error) {
	var otp model.Otp
	err := s.db.WithContext(ctx).
		Where("email = ? AND used = ? AND expires_at > ?", email, false, time.Now()).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &otp, nil
}

func (s *OtpRepoImpl) MarkUsed(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Otp{}).
		Where("id = ?", id).
		Update("used", true).Error
}

// InvalidateByEmail 重新发送验证码前作废旧码
func (s *OtpRepoImpl) InvalidateByEmail(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).Model(&model.Otp{}).
		Where("email = ? AND used = ?", email, false).
		Update("used", true).Error
}

// DeleteExpired 定时清理过期验证码
func (s *OtpRepoImpl) DeleteExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.Otp{})
	return result.RowsAffected, result.Error
}
