package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Email    string `json:"email" binding:"required" validate:"email,max=255"`
	Password string `json:"password" binding:"required" validate:"min=6,max=20"`
	Nickname string `json:"nickname" binding:"required" validate:"min=1,max=15"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Email    string `json:"email" binding:"required" validate:"email"`
	Password string `json:"password" binding:"required" validate:"min=6,max=20"`
}

// TokenPairDTO 令牌对返回
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenDTO 刷新令牌请求
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SendOtpDTO 发送验证码请求
type SendOtpDTO struct {
	Email string `json:"email" binding:"required" validate:"email"`
}

// VerifyOtpDTO 校验验证码请求
type VerifyOtpDTO struct {
	Email string `json:"email" binding:"required" validate:"email"`
	Code  string `json:"code" binding:"required" validate:"min=6,max=6"`
}

// ResetTokenDTO 校验成功后下发的重置令牌
type ResetTokenDTO struct {
	ResetToken string `json:"reset_token"`
}

// ResetPasswordDTO 重置密码请求
type ResetPasswordDTO struct {
	Email       string `json:"email" binding:"required" validate:"email"`
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required" validate:"min=6,max=20"`
}
