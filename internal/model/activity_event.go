package model

import "time"

// ActivityEvent 一次用户行为事件，HTTP 埋点或 Kafka 消费写入
type ActivityEvent struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;default:0;index:idx_activity_user"`
	SessionID string    `gorm:"type:varchar(64);not null;index:idx_activity_session"`
	EventType string    `gorm:"type:varchar(32);not null"`
	EventDate time.Time `gorm:"type:date;not null;index:idx_activity_date"` // 按天聚合用，写入时截断
	CreatedAt time.Time
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}

// ActivityDailyMetric 按天的活跃汇总，由定时任务从事件表滚动生成
type ActivityDailyMetric struct {
	ID               uint64    `gorm:"primaryKey"`
	MetricDate       time.Time `gorm:"type:date;not null;uniqueIndex:idx_activity_metric_date"`
	EventCount       int64     `gorm:"not null;default:0"`
	DistinctSessions int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ActivityDailyMetric) TableName() string {
	return "activity_daily_metrics"
}
