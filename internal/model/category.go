package model

import "time"

// Category 旧版类目表，仅在导入时做名称到 ID 的解析
// 展示层的三级类目树由 keywords 表的文本字段实时聚合得出
type Category struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255);not null;uniqueIndex:idx_category_name"`
	CreatedAt time.Time
}

func (Category) TableName() string {
	return "categories"
}
