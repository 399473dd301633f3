package job

import (
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// OtpCleanJob 定时清理过期验证码与过期刷新令牌
type OtpCleanJob struct {
	otpRepo   repository.OtpRepo
	tokenRepo repository.RefreshTokenRepo
}

func NewOtpCleanJob(otpRepo repository.OtpRepo, tokenRepo repository.RefreshTokenRepo) *OtpCleanJob {
	return &OtpCleanJob{
		otpRepo:   otpRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *OtpCleanJob) Run() {
	traceID := "job-otp-clean-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	deleted, err := s.otpRepo.DeleteExpired(ctx)
	if err != nil {
		log.ErrorContext(ctx, "过期验证码清理失败", "err", err)
	} else if deleted > 0 {
		log.InfoContext(ctx, "过期验证码已清理", "count", deleted)
	}

	deleted, err = s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.ErrorContext(ctx, "过期刷新令牌清理失败", "err", err)
	} else if deleted > 0 {
		log.InfoContext(ctx, "过期刷新令牌已清理", "count", deleted)
	}
}
