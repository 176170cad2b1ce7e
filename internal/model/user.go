package model

import "time"

// User 轻量账号，角色单值（USER / ADMIN）
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_user_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         string `gorm:"type:varchar(16);not null;default:USER" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
