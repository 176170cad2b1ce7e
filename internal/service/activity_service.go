package service

import (
	"SellerLens/internal/api/dto"
	"SellerLens/internal/model"
	"SellerLens/internal/repository"
	"context"
	"strings"
	"time"
)

const (
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

type ActivityService interface {
	Track(ctx context.Context, userID uint64, req *dto.ActivityTrackDTO) error
	// Summary 最近 days 天的活跃汇总，按天/周/月分桶
	Summary(ctx context.Context, granularity string, days int) ([]*dto.ActivityBucketDTO, error)
	// RollupDaily 把事件表滚动聚合进日指标表，重复执行幂等
	RollupDaily(ctx context.Context, from, to time.Time) error
}

type activityServiceImpl struct {
	activityRepo repository.ActivityRepo
}

func NewActivityService(activityRepo repository.ActivityRepo) ActivityService {
	return &activityServiceImpl{
		activityRepo: activityRepo,
	}
}

func (s *activityServiceImpl) Track(ctx context.Context, userID uint64, req *dto.ActivityTrackDTO) error {
	sessionID := strings.TrimSpace(req.SessionID)
	eventType := strings.TrimSpace(req.EventType)
	if sessionID == "" || eventType == "" {
		return ErrParamInvalid
	}
	return s.activityRepo.InsertEvent(ctx, &model.ActivityEvent{
		UserID:    userID,
		SessionID: sessionID,
		EventType: eventType,
	})
}

func (s *activityServiceImpl) Summary(ctx context.Context, granularity string, days int) ([]*dto.ActivityBucketDTO, error) {
	if days <= 0 || days > 366 {
		days = 30
	}
	now := time.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := to.AddDate(0, 0, -(days - 1))

	metrics, err := s.activityRepo.ListDailyMetrics(ctx, from, to)
	if err != nil {
		return nil, err
	}

	bucketOf := func(t time.Time) string {
		switch granularity {
		case GranularityWeek:
			// 桶键是该周周一的日期
			offset := (int(t.Weekday()) + 6) % 7
			return t.AddDate(0, 0, -offset).Format(time.DateOnly)
		case GranularityMonth:
			return t.Format("2006-01")
		default:
			return t.Format(time.DateOnly)
		}
	}

	// 日指标已按天去重，跨天聚合时会话数直接相加，跨天回访会重复计入
	merged := make(map[string]*dto.ActivityBucketDTO)
	var order []string
	for _, m := range metrics {
		key := bucketOf(m.MetricDate)
		bucket, ok := merged[key]
		if !ok {
			bucket = &dto.ActivityBucketDTO{Bucket: key}
			merged[key] = bucket
			order = append(order, key)
		}
		bucket.EventCount += m.EventCount
		bucket.DistinctSessions += m.DistinctSessions
	}

	rows := make([]*dto.ActivityBucketDTO, 0, len(order))
	for _, key := range order {
		rows = append(rows, merged[key])
	}
	return rows, nil
}

func (s *activityServiceImpl) RollupDaily(ctx context.Context, from, to time.Time) error {
	daily, err := s.activityRepo.AggregateDaily(ctx, from, to)
	if err != nil {
		return err
	}
	for _, d := range daily {
		err := s.activityRepo.UpsertDailyMetric(ctx, &model.ActivityDailyMetric{
			MetricDate:       d.EventDate,
			EventCount:       d.EventCount,
			DistinctSessions: d.DistinctSessions,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
