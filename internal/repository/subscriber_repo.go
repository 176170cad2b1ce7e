package repository

import (
	"SellerLens/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SubscriberRepo interface {
	// Upsert 新邮箱创建、已退订的重新激活，重复订阅幂等
	Upsert(ctx context.Context, email string) (*model.Subscriber, error)
	DeactivateByEmail(ctx context.Context, email string) (int64, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Subscriber, int64, error)
	FindUnsynced(ctx context.Context, limit int) ([]*model.Subscriber, error)
	MarkSynced(ctx context.Context, ids []uint64, syncedAt time.Time) error
}

type subscriberRepoImpl struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepo {
	return &subscriberRepoImpl{
		db: db,
	}
}

func (s *subscriberRepoImpl) Upsert(ctx context.Context, email string) (*model.Subscriber, error) {
	var existing model.Subscriber
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		sub := model.Subscriber{Email: email, IsActive: true}
		if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
			return nil, err
		}
		return &sub, nil
	}

	if !existing.IsActive {
		// 重新订阅需要再次同步到服务商
		err = s.db.WithContext(ctx).Model(&existing).
			Updates(map[string]interface{}{"is_active": true, "synced_at": nil}).Error
		if err != nil {
			return nil, err
		}
		existing.IsActive = true
		existing.SyncedAt = nil
	}
	return &existing, nil
}

func (s *subscriberRepoImpl) DeactivateByEmail(ctx context.Context, email string) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Subscriber{}).
		Where("email = ? AND is_active = ?", email, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (s *subscriberRepoImpl) List(ctx context.Context, page, pageSize int) ([]*model.Subscriber, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Subscriber{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*model.Subscriber
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

func (s *subscriberRepoImpl) FindUnsynced(ctx context.Context, limit int) ([]*model.Subscriber, error) {
	var rows []*model.Subscriber
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND synced_at IS NULL", true).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *subscriberRepoImpl) MarkSynced(ctx context.Context, ids []uint64, syncedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&model.Subscriber{}).
		Where("id IN ?", ids).
		Update("synced_at", syncedAt).Error
}
