package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrMemberNotFound    = errors.New("会员不存在")
	ErrEmailExist        = errors.New("邮箱已注册")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrTokenInvalid      = errors.New("令牌无效或已过期")
	ErrOtpIncorrect      = errors.New("验证码错误或已过期")
	ErrOtpSendLimit      = errors.New("验证码发送过于频繁")
	ErrResetTokenInvalid = errors.New("重置令牌无效或已过期")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrActionDuplicate   = errors.New("重复操作")
	ErrActionConflict    = errors.New("操作冲突，请稍后重试")
	ErrFollowSelf        = errors.New("不能关注自己")
	ErrFileNotSupported  = errors.New("不支持的文件类型")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrMemberNotFound:    NotFound,
	ErrEmailExist:        BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrTokenInvalid:      Unauthorized,
	ErrOtpIncorrect:      Unauthorized,
	ErrOtpSendLimit:      TooManyRequests,
	ErrResetTokenInvalid: Unauthorized,
	ErrPostNotFound:      NotFound,
	ErrActionDuplicate:   Conflict,
	ErrActionConflict:    Conflict,
	ErrFollowSelf:        BadRequest,
	ErrFileNotSupported:  BadRequest,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}
