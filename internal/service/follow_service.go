package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, followingID uint64) (*dto.FollowStateDTO, error)
	Unfollow(ctx context.Context, followerID, followingID uint64) (*dto.FollowStateDTO, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowers(ctx context.Context, memberID uint64, page, pageSize int) ([]*dto.FollowListItemDTO, error)
	GetFollowing(ctx context.Context, memberID uint64, page, pageSize int) ([]*dto.FollowListItemDTO, error)
}

type followServiceImpl struct {
	followRepo repository.FollowRepo
	memberRepo repository.MemberRepo
}

func NewFollowService(followRepo repository.FollowRepo, memberRepo repository.MemberRepo) FollowService {
	return &followServiceImpl{
		followRepo: followRepo,
		memberRepo: memberRepo,
	}
}

func (s *followServiceImpl) Follow(ctx context.Context, followerID, followingID uint64) (*dto.FollowStateDTO, error) {
	if followerID == followingID {
		return nil, ErrFollowSelf
	}

	target, err := s.memberRepo.GetMemberByID(ctx, followingID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrMemberNotFound
	}

	if err = s.followRepo.CreateFollow(ctx, followerID, followingID); err != nil {
		return nil, err
	}
	return s.followState(ctx, followerID, followingID)
}

func (s *followServiceImpl) Unfollow(ctx context.Context, followerID, followingID uint64) (*dto.FollowStateDTO, error) {
	if followerID == followingID {
		return nil, ErrFollowSelf
	}

	if err := s.followRepo.DeleteFollow(ctx, followerID, followingID); err != nil {
		return nil, err
	}
	return s.followState(ctx, followerID, followingID)
}

func (s *followServiceImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	if followerID == 0 {
		return false, nil
	}
	return s.followRepo.CheckFollowExists(ctx, followerID, followingID)
}

func (s *followServiceImpl) GetFollowers(ctx context.Context, memberID uint64, page, pageSize int) ([]*dto.FollowListItemDTO, error) {
	limit, offset := normalizePage(page, pageSize)
	follows, err := s.followRepo.GetFollowers(ctx, memberID, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}
	return s.toListItems(ctx, ids, follows)
}

func (s *followServiceImpl) GetFollowing(ctx context.Context, memberID uint64, page, pageSize int) ([]*dto.FollowListItemDTO, error) {
	limit, offset := normalizePage(page, pageSize)
	follows, err := s.followRepo.GetFollowing(ctx, memberID, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowingID)
	}
	return s.toListItems(ctx, ids, follows)
}

func (s *followServiceImpl) followState(ctx context.Context, followerID, followingID uint64) (*dto.FollowStateDTO, error) {
	target, err := s.memberRepo.GetMemberByID(ctx, followingID)
	if err != nil || target == nil {
		return nil, ErrMemberNotFound
	}
	isFollowing, err := s.followRepo.CheckFollowExists(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowStateDTO{
		MemberID:      followingID,
		FollowerCount: target.FollowerCount,
		IsFollowing:   isFollowing,
	}, nil
}

func (s *followServiceImpl) toListItems(ctx context.Context, ids []uint64, follows []*model.Follow) ([]*dto.FollowListItemDTO, error) {
	if len(ids) == 0 {
		return []*dto.FollowListItemDTO{}, nil
	}

	members, err := s.memberRepo.GetMembersByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	memberMap := make(map[uint64]*model.Member, len(members))
	for _, m := range members {
		memberMap[m.ID] = m
	}

	followedAt := make(map[uint64]time.Time, len(follows))
	for _, f := range follows {
		followedAt[f.FollowerID] = f.CreatedAt
		followedAt[f.FollowingID] = f.CreatedAt
	}

	items := make([]*dto.FollowListItemDTO, 0, len(ids))
	for _, id := range ids {
		m, ok := memberMap[id]
		if !ok {
			continue
		}
		item := &dto.FollowListItemDTO{}
		if err = copier.Copy(item, m); err != nil {
			return nil, err
		}
		item.MemberID = m.ID
		item.CreatedAt = followedAt[id].Format(time.RFC3339)
		items = append(items, item)
	}
	return items, nil
}
