package cron

import (
	"Inkwell/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine       *cron.Cron
	reconcileJob *job.ReconcileJob
	otpCleanJob  *job.OtpCleanJob
}

func NewCronManager(reconcileJob *job.ReconcileJob, otpCleanJob *job.OtpCleanJob) *Manager {
	return &Manager{
		engine:       cron.New(cron.WithSeconds()),
		reconcileJob: reconcileJob,
		otpCleanJob:  otpCleanJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.reconcileJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@hourly", s.otpCleanJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
