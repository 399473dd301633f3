package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
)

type MemberService interface {
	GetProfile(ctx context.Context, viewerID, memberID uint64) (*dto.MemberDTO, error)
	GetSelfProfile(ctx context.Context, memberID uint64) (*dto.MemberDTO, error)
	UpdateProfile(ctx context.Context, memberID uint64, req *dto.UpdateMemberDTO) error
	ChangePassword(ctx context.Context, memberID uint64, req *dto.ChangePasswordDTO) error
}

type memberServiceImpl struct {
	memberRepo repository.MemberRepo
	followRepo repository.FollowRepo
	postRepo   repository.PostRepo
	tokenRepo  repository.RefreshTokenRepo
}

func NewMemberService(
	memberRepo repository.MemberRepo,
	followRepo repository.FollowRepo,
	postRepo repository.PostRepo,
	tokenRepo repository.RefreshTokenRepo,
) MemberService {
	return &memberServiceImpl{
		memberRepo: memberRepo,
		followRepo: followRepo,
		postRepo:   postRepo,
		tokenRepo:  tokenRepo,
	}
}

func (s *memberServiceImpl) GetProfile(ctx context.Context, viewerID, memberID uint64) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	isFollowing := false
	if viewerID != 0 && viewerID != memberID {
		isFollowing, _ = s.followRepo.CheckFollowExists(ctx, viewerID, memberID)
	}

	return &dto.MemberDTO{
		MemberID:       member.ID,
		Nickname:       member.Nickname,
		AvatarURL:      member.AvatarURL,
		Bio:            member.Bio,
		FollowerCount:  member.FollowerCount,
		FollowingCount: member.FollowingCount,
		IsFollowing:    isFollowing,
		CreatedAt:      &member.CreatedAt,
	}, nil
}

func (s *memberServiceImpl) GetSelfProfile(ctx context.Context, memberID uint64) (*dto.MemberDTO, error) {
	profile, err := s.GetProfile(ctx, 0, memberID)
	if err != nil {
		return nil, err
	}

	member, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil || member == nil {
		return nil, ErrMemberNotFound
	}
	profile.Email = member.Email
	return profile, nil
}

func (s *memberServiceImpl) UpdateProfile(ctx context.Context, memberID uint64, req *dto.UpdateMemberDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrParamInvalid
	}

	member, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	updates := map[string]interface{}{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) == 0 {
		return nil
	}

	if err = s.memberRepo.UpdateMember(ctx, memberID, updates); err != nil {
		return err
	}

	// 昵称变更时同步帖子上的作者昵称快照
	if req.Nickname != nil && *req.Nickname != member.Nickname {
		return s.postRepo.UpdateAuthorNickname(ctx, memberID, *req.Nickname)
	}
	return nil
}

func (s *memberServiceImpl) ChangePassword(ctx context.Context, memberID uint64, req *dto.ChangePasswordDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrParamInvalid
	}

	member, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	if err = security.CheckPasswordHash(req.OldPassword, member.Password); err != nil {
		return ErrPasswordIncorrect
	}

	hashed, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err = s.memberRepo.UpdatePassword(ctx, memberID, hashed); err != nil {
		return err
	}

	// 改密后撤销全部刷新令牌
	return s.tokenRepo.DeleteByMemberID(ctx, memberID)
}
