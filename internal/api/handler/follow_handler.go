package handler

import (
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followSvc service.FollowService
}

func NewFollowHandler(followSvc service.FollowService) *FollowHandler {
	return &FollowHandler{followSvc: followSvc}
}

// Follow 关注会员
func (s *FollowHandler) Follow(c *gin.Context) {
	followingID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil || followingID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	followerID := c.GetUint64("member_id")

	state, err := s.followSvc.Follow(c.Request.Context(), followerID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// Unfollow 取消关注
func (s *FollowHandler) Unfollow(c *gin.Context) {
	followingID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil || followingID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	followerID := c.GetUint64("member_id")

	state, err := s.followSvc.Unfollow(c.Request.Context(), followerID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// GetFollowers 粉丝列表
func (s *FollowHandler) GetFollowers(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := parsePage(c)

	items, err := s.followSvc.GetFollowers(c.Request.Context(), memberID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// GetFollowing 关注列表
func (s *FollowHandler) GetFollowing(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := parsePage(c)

	items, err := s.followSvc.GetFollowing(c.Request.Context(), memberID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}
