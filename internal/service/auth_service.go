package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/mail"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const otpSendLimitPerHour = 5

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenPairDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenPairDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, memberID uint64, accessToken string) error
	SendOtp(ctx context.Context, email string) error
	VerifyOtp(ctx context.Context, email, code string) (*dto.ResetTokenDTO, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordDTO) error
}

type authServiceImpl struct {
	memberRepo repository.MemberRepo
	tokenRepo  repository.RefreshTokenRepo
	otpRepo    repository.OtpRepo
}

func NewAuthService(
	memberRepo repository.MemberRepo,
	tokenRepo repository.RefreshTokenRepo,
	otpRepo repository.OtpRepo,
) AuthService {
	return &authServiceImpl{
		memberRepo: memberRepo,
		tokenRepo:  tokenRepo,
		otpRepo:    otpRepo,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.TokenPairDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	existing, err := s.memberRepo.GetMemberByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	member := &model.Member{
		Email:     req.Email,
		Password:  hashed,
		Nickname:  req.Nickname,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err = s.memberRepo.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, member.ID)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenPairDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}

	member, err := s.memberRepo.GetMemberByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	if err = security.CheckPasswordHash(req.Password, member.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	return s.issueTokenPair(ctx, member.ID)
}

// RefreshToken 校验刷新令牌并轮换，旧令牌作废
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := security.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != security.TokenTypeRefresh {
		return nil, ErrTokenInvalid
	}

	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.MemberID != claims.UserID {
		return nil, ErrTokenInvalid
	}

	if err = s.tokenRepo.DeleteByToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, claims.UserID)
}

// Logout 撤销刷新令牌，并将访问令牌签名加入黑名单直至其自然过期
func (s *authServiceImpl) Logout(ctx context.Context, memberID uint64, accessToken string) error {
	if err := s.tokenRepo.DeleteByMemberID(ctx, memberID); err != nil {
		return err
	}

	signature, err := security.ExtractSignature(accessToken)
	if err != nil {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenDenylistKey+signature, "1", security.JWTExpirationTime)
}

func (s *authServiceImpl) SendOtp(ctx context.Context, email string) error {
	member, err := s.memberRepo.GetMemberByEmail(ctx, email)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	count, err := redis.IncrWithExpiration(ctx, consts.OtpSendLimitKey+email, time.Hour)
	if err != nil {
		return err
	}
	if count > otpSendLimitPerHour {
		return ErrOtpSendLimit
	}

	// 重新发送时作废旧码
	if err = s.otpRepo.InvalidateByEmail(ctx, email); err != nil {
		return err
	}

	code := util.GenerateCode(6)
	otp := &model.Otp{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(consts.OtpExpiration),
		CreatedAt: time.Now(),
	}
	if err = s.otpRepo.CreateOtp(ctx, otp); err != nil {
		return err
	}

	if err = mail.SendOtpMail(ctx, email, code); err != nil {
		log.ErrorContext(ctx, "验证码邮件发送失败", "email", email, "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *authServiceImpl) VerifyOtp(ctx context.Context, email, code string) (*dto.ResetTokenDTO, error) {
	otp, err := s.otpRepo.GetLatestValidOtp(ctx, email)
	if err != nil {
		return nil, err
	}
	if otp == nil || otp.Code != code {
		return nil, ErrOtpIncorrect
	}

	if err = s.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		return nil, err
	}

	resetToken := uuid.New().String()
	if err = redis.SetWithExpiration(ctx, consts.OtpResetTokenKey+email, resetToken, consts.ResetTokenExpiration); err != nil {
		return nil, err
	}
	return &dto.ResetTokenDTO{ResetToken: resetToken}, nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrParamInvalid
	}

	stored, err := redis.GetValue(ctx, consts.OtpResetTokenKey+req.Email)
	if err != nil {
		return err
	}
	if stored == "" || stored != req.ResetToken {
		return ErrResetTokenInvalid
	}

	member, err := s.memberRepo.GetMemberByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	hashed, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err = s.memberRepo.UpdatePassword(ctx, member.ID, hashed); err != nil {
		return err
	}

	// 重置后撤销全部会话，重置令牌一次性使用
	if err = s.tokenRepo.DeleteByMemberID(ctx, member.ID); err != nil {
		log.WarnContext(ctx, "刷新令牌撤销失败", "memberID", member.ID, "err", err)
	}
	_ = redis.DeleteKey(ctx, consts.OtpResetTokenKey+req.Email)
	return nil
}

func (s *authServiceImpl) issueTokenPair(ctx context.Context, memberID uint64) (*dto.TokenPairDTO, error) {
	accessToken, err := security.GenerateToken(memberID, nil)
	if err != nil {
		return nil, err
	}
	refreshToken, err := security.GenerateRefreshToken(memberID, nil)
	if err != nil {
		return nil, err
	}

	record := &model.RefreshToken{
		MemberID:  memberID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(security.RefreshExpiration),
		CreatedAt: time.Now(),
	}
	if err = s.tokenRepo.CreateToken(ctx, record); err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
