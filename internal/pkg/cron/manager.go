package cron

import (
	"SellerLens/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	activityRollupJob *job.ActivityRollupJob
	newsletterSyncJob *job.NewsletterSyncJob
}

func NewCronManager(activityRollupJob *job.ActivityRollupJob, newsletterSyncJob *job.NewsletterSyncJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		activityRollupJob: activityRollupJob,
		newsletterSyncJob: newsletterSyncJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 活跃滚动聚合每小时跑一次，当天指标允许小时级延迟
	if _, err := s.engine.AddJob("0 0 * * * *", s.activityRollupJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("0 */10 * * * *", s.newsletterSyncJob); err != nil {
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
