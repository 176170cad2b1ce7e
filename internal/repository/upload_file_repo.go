package repository

import (
	"SellerLens/internal/model"
	"context"

	"gorm.io/gorm"
)

type UploadFileRepo interface {
	Create(ctx context.Context, file *model.UploadFile) error
	List(ctx context.Context, page, pageSize int) ([]*model.UploadFile, int64, error)
}

type uploadFileRepoImpl struct {
	db *gorm.DB
}

func NewUploadFileRepository(db *gorm.DB) UploadFileRepo {
	return &uploadFileRepoImpl{
		db: db,
	}
}

func (s *uploadFileRepoImpl) Create(ctx context.Context, file *model.UploadFile) error {
	return s.db.WithContext(ctx).Create(file).Error
}

func (s *uploadFileRepoImpl) List(ctx context.Context, page, pageSize int) ([]*model.UploadFile, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.UploadFile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*model.UploadFile
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
