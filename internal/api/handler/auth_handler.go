package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册新会员
func (s *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	tokens, err := s.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokens)
}

// Login 登录
func (s *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	tokens, err := s.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokens)
}

// Refresh 刷新令牌
func (s *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	tokens, err := s.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tokens)
}

// Logout 登出当前会话
func (s *AuthHandler) Logout(c *gin.Context) {
	memberID := c.GetUint64("member_id")
	accessToken := c.GetString("access_token")

	if err := s.authSvc.Logout(c.Request.Context(), memberID, accessToken); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SendOtp 发送密码重置验证码
func (s *AuthHandler) SendOtp(c *gin.Context) {
	var req dto.SendOtpDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.authSvc.SendOtp(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// VerifyOtp 校验验证码并下发重置令牌
func (s *AuthHandler) VerifyOtp(c *gin.Context) {
	var req dto.VerifyOtpDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.authSvc.VerifyOtp(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ResetPassword 使用重置令牌设置新密码
func (s *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.authSvc.ResetPassword(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
