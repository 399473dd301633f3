package consts

import "time"

const (
	// ViewDedupWindow 同一 viewer 对同一帖子的浏览去重窗口
	ViewDedupWindow = 5 * time.Minute
	// OtpExpiration 邮箱验证码有效期
	OtpExpiration = 10 * time.Minute
	// ResetTokenExpiration 重置密码临时凭证有效期
	ResetTokenExpiration = 10 * time.Minute
)

const (
	MimePrefixImage = "image"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)
