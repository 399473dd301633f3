package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type MemberRepo interface {
	CreateMember(ctx context.Context, member *model.Member) error
	GetMemberByID(ctx context.Context, id uint64) (*model.Member, error)
	GetMemberByEmail(ctx context.Context, email string) (*model.Member, error)
	GetMembersByIds(ctx context.Context, ids []uint64) ([]*model.Member, error)
	UpdateMember(ctx context.Context, id uint64, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error
	UpdatePasswordByEmail(ctx context.Context, email string, hashedPassword string) error
}

type MemberRepoImpl struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepo {
	return &MemberRepoImpl{db: db}
}

func (s *MemberRepoImpl) CreateMember(ctx context.Context, member *model.Member) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *MemberRepoImpl) GetMemberByID(ctx context.Context, id uint64) (*model.Member, error) {
	var member model.Member
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (s *MemberRepoImpl) GetMemberByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member
	err := s.db.WithContext(ctx).
		Where("email = ? AND is_deleted = ?", email, false).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (s *MemberRepoImpl) GetMembersByIds(ctx context.Context, ids []uint64) ([]*model.Member, error) {
	var members []*model.Member
	err := s.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (s *MemberRepoImpl) UpdateMember(ctx context.Context, id uint64, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.Member{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (s *MemberRepoImpl) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	return s.db.WithContext(ctx).Model(&model.Member{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}

func (s *MemberRepoImpl) UpdatePasswordByEmail(ctx context.Context, email string, hashedPassword string) error {
	return s.db.WithContext(ctx).Model(&model.Member{}).
		Where("email = ?", email).
		Update("password", hashedPassword).Error
}
