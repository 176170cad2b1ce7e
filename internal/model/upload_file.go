package model

import "time"

// UploadFile 一次周期上传的归档记录，原始批次内容存入 MinIO
type UploadFile struct {
	ID           uint64 `gorm:"primaryKey"`
	UploadPeriod string `gorm:"type:varchar(32);not null;index:idx_upload_file_partition,priority:1"`
	KeywordType  string `gorm:"type:varchar(16);not null;index:idx_upload_file_partition,priority:2"`
	ObjectKey    string `gorm:"type:varchar(512);not null"`
	RowCount     int    `gorm:"not null;default:0"`
	ErrorCount   int    `gorm:"not null;default:0"`
	UploadedBy   uint64 `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (UploadFile) TableName() string {
	return "upload_files"
}
