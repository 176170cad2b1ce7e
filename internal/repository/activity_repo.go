package repository

import (
	"SellerLens/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyActivity 事件表按天的聚合结果
type DailyActivity struct {
	EventDate        time.Time
	EventCount       int64
	DistinctSessions int64
}

type ActivityRepo interface {
	InsertEvent(ctx context.Context, event *model.ActivityEvent) error
	// AggregateDaily 从事件表按天聚合，定时任务滚动落库用
	AggregateDaily(ctx context.Context, from, to time.Time) ([]*DailyActivity, error)
	UpsertDailyMetric(ctx context.Context, metric *model.ActivityDailyMetric) error
	ListDailyMetrics(ctx context.Context, from, to time.Time) ([]*model.ActivityDailyMetric, error)
}

type activityRepoImpl struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepo {
	return &activityRepoImpl{
		db: db,
	}
}

func (s *activityRepoImpl) InsertEvent(ctx context.Context, event *model.ActivityEvent) error {
	if event.EventDate.IsZero() {
		event.EventDate = truncateToDay(event.CreatedAt)
	}
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *activityRepoImpl) AggregateDaily(ctx context.Context, from, to time.Time) ([]*DailyActivity, error) {
	var rows []*DailyActivity
	err := s.db.WithContext(ctx).Model(&model.ActivityEvent{}).
		Select("event_date, COUNT(*) AS event_count, COUNT(DISTINCT session_id) AS distinct_sessions").
		Where("event_date >= ? AND event_date <= ?", from, to).
		Group("event_date").
		Order("event_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *activityRepoImpl) UpsertDailyMetric(ctx context.Context, metric *model.ActivityDailyMetric) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"event_count", "distinct_sessions", "updated_at"}),
	}).Create(metric).Error
}

func (s *activityRepoImpl) ListDailyMetrics(ctx context.Context, from, to time.Time) ([]*model.ActivityDailyMetric, error) {
	var rows []*model.ActivityDailyMetric
	err := s.db.WithContext(ctx).
		Where("metric_date >= ? AND metric_date <= ?", from, to).
		Order("metric_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
