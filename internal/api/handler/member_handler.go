package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberSvc service.MemberService
}

func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// GetProfile 查看会员主页
func (s *MemberHandler) GetProfile(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err != nil || memberID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	viewerID := c.GetUint64("member_id")

	profile, err := s.memberSvc.GetProfile(c.Request.Context(), viewerID, memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// GetMe 查看自己的资料
func (s *MemberHandler) GetMe(c *gin.Context) {
	memberID := c.GetUint64("member_id")

	profile, err := s.memberSvc.GetSelfProfile(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// UpdateMe 修改自己的资料
func (s *MemberHandler) UpdateMe(c *gin.Context) {
	memberID := c.GetUint64("member_id")

	var req dto.UpdateMemberDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.memberSvc.UpdateProfile(c.Request.Context(), memberID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ChangePassword 修改密码
func (s *MemberHandler) ChangePassword(c *gin.Context) {
	memberID := c.GetUint64("member_id")

	var req dto.ChangePasswordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.memberSvc.ChangePassword(c.Request.Context(), memberID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
