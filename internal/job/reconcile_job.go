package job

import (
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// ReconcileJob 定时以流水表为准校准帖子计数
type ReconcileJob struct {
	metricSvc service.PostMetricService
}

func NewReconcileJob(metricSvc service.PostMetricService) *ReconcileJob {
	return &ReconcileJob{metricSvc: metricSvc}
}

func (s *ReconcileJob) Run() {
	traceID := "job-reconcile-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.metricSvc.ReconcileDirtyPosts(ctx); err != nil {
		log.ErrorContext(ctx, "帖子计数对账任务失败", "err", err)
	}
}
