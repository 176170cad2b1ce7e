package repository

import (
	"SellerLens/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryFilter 类目聚合的过滤条件
type CategoryFilter struct {
	UploadPeriod string
	IsHpk        bool
	IsRk         bool
}

// CategoryCount 一个分组的去重关键词计数，层级越深填充的字段越多
type CategoryCount struct {
	Category     string
	SubCategory1 string
	SubCategory2 string
	KeywordCount int64
}

type CategoryRepo interface {
	// 三级分别独立分组计数，保证每级的数字与用户在该级浏览到的结果一致
	CountByCategory(ctx context.Context, f CategoryFilter) ([]*CategoryCount, error)
	CountBySubCategory1(ctx context.Context, f CategoryFilter) ([]*CategoryCount, error)
	CountBySubCategory2(ctx context.Context, f CategoryFilter) ([]*CategoryCount, error)
	// GetOrCreate 旧版类目表的名称解析，导入路径使用
	GetOrCreate(ctx context.Context, name string) (*model.Category, error)
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepo {
	return &categoryRepoImpl{
		db: db,
	}
}

// base 一级谓词：活跃行且类目非空，周期与类型过滤可选
func (s *categoryRepoImpl) base(ctx context.Context, f CategoryFilter) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&model.Keyword{}).
		Where("is_active = ?", true).
		Where("category IS NOT NULL AND category <> ''").
		Where("is_hpk = ? AND is_rk = ?", f.IsHpk, f.IsRk)

	if f.UploadPeriod != "" {
		db = db.Where("upload_period = ?", f.UploadPeriod)
	}
	return db
}

func (s *categoryRepoImpl) CountByCategory(ctx context.Context, f CategoryFilter) ([]*CategoryCount, error) {
	var rows []*CategoryCount
	err := s.base(ctx, f).
		Select("category, COUNT(DISTINCT keyword) AS keyword_count").
		Group("category").
		Order("keyword_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *categoryRepoImpl) CountBySubCategory1(ctx context.Context, f CategoryFilter) ([]*CategoryCount, error) {
	var rows []*CategoryCount
	err := s.base(ctx, f).
		Where("sub_category1 IS NOT NULL AND sub_category1 <> ''").
		Select("category, sub_category1, COUNT(DISTINCT keyword) AS keyword_count").
		Group("category, sub_category1").
		Order("keyword_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountBySubCategory2 只统计路径完整的行，避免产生无父节点的孤儿
func (s *categoryRepoImpl) CountBySubCategory2(ctx context.Context, f CategoryFilter) ([]*CategoryCount, error) {
	var rows []*CategoryCount
	err := s.base(ctx, f).
		Where("sub_category1 IS NOT NULL AND sub_category1 <> ''").
		Where("sub_category2 IS NOT NULL AND sub_category2 <> ''").
		Select("category, sub_category1, sub_category2, COUNT(DISTINCT keyword) AS keyword_count").
		Group("category, sub_category1, sub_category2").
		Order("keyword_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *categoryRepoImpl) GetOrCreate(ctx context.Context, name string) (*model.Category, error) {
	category := model.Category{
		Name:      name,
		CreatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error
	if err != nil {
		return nil, err
	}
	// 如果记录已存在，查询获取完整数据
	var existing model.Category
	err = s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
