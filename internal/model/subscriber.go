package model

import "time"

// Subscriber 邮件订阅者，同步到外部邮件服务商
type Subscriber struct {
	ID        uint64     `gorm:"primaryKey"`
	Email     string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_subscriber_email" json:"email"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	SyncedAt  *time.Time `json:"synced_at"` // 为空表示尚未同步到服务商
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}
