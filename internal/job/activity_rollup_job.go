package job

import (
	"SellerLens/internal/pkg/logger"
	"SellerLens/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// ActivityRollupJob 把事件表滚动聚合进日指标表
//
// 覆盖最近两天，跨天执行时前一天的尾巴也会被重算，幂等覆盖。
type ActivityRollupJob struct {
	activitySvc service.ActivityService
}

func NewActivityRollupJob(activitySvc service.ActivityService) *ActivityRollupJob {
	return &ActivityRollupJob{
		activitySvc: activitySvc,
	}
}

func (s *ActivityRollupJob) Run() {
	traceID := "job-activity-rollup-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	now := time.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := to.AddDate(0, 0, -1)

	log.InfoContext(ctx, "start activity rollup job", "from", from, "to", to)

	if err := s.activitySvc.RollupDaily(ctx, from, to); err != nil {
		log.ErrorContext(ctx, "activity rollup job error", "err", err)
		return
	}

	log.InfoContext(ctx, "activity rollup job finished")
}
