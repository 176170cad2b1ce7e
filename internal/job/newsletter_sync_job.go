package job

import (
	"SellerLens/internal/pkg/logger"
	"SellerLens/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// NewsletterSyncJob 把未同步的订阅者批量推到邮件服务商
type NewsletterSyncJob struct {
	subscriberSvc service.SubscriberService
}

func NewNewsletterSyncJob(subscriberSvc service.SubscriberService) *NewsletterSyncJob {
	return &NewsletterSyncJob{
		subscriberSvc: subscriberSvc,
	}
}

func (s *NewsletterSyncJob) Run() {
	traceID := "job-newsletter-sync-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	synced, err := s.subscriberSvc.SyncPending(ctx, 100)
	if err != nil {
		log.ErrorContext(ctx, "newsletter sync job error", "err", err)
		return
	}
	if synced > 0 {
		log.InfoContext(ctx, "newsletter sync job finished", "synced_count", synced)
	}
}
