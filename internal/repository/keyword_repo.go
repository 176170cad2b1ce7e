package repository

import (
	"SellerLens/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// KeywordFilter 读路径的过滤条件，三个类型谓词始终恰好激活一个
type KeywordFilter struct {
	Query        string
	Category     string
	SubCategory1 string
	SubCategory2 string
	UploadPeriod string
	IsHpk        bool
	IsRk         bool
}

// PeriodCount 某个上传周期内去重后的关键词数量
type PeriodCount struct {
	UploadPeriod     string
	DistinctKeywords int64
}

type KeywordRepo interface {
	// FindCandidates 返回过滤条件下的全部候选行，按 keyword、search_volume 降序、id 排列
	FindCandidates(ctx context.Context, f KeywordFilter) ([]*model.Keyword, error)
	// CountDistinct 过滤条件下去重关键词总数，与搜索引擎的计数规则一致
	CountDistinct(ctx context.Context, f KeywordFilter) (int64, error)
	DeactivatePartition(ctx context.Context, uploadPeriod string, isHpk, isRk bool) (int64, error)
	InsertChunk(ctx context.Context, rows []*model.Keyword) error
	ListActivePeriods(ctx context.Context, isHpk, isRk bool) ([]*PeriodCount, error)
	GetByID(ctx context.Context, id uint64) (*model.Keyword, error)
	UpdateScores(ctx context.Context, id uint64, updates map[string]interface{}) error
	Deactivate(ctx context.Context, id uint64) error
}

type keywordRepoImpl struct {
	db *gorm.DB
}

func NewKeywordRepository(db *gorm.DB) KeywordRepo {
	return &keywordRepoImpl{
		db: db,
	}
}

// applyFilter 组装查询谓词，is_active 与类型标志位无条件生效
func (s *keywordRepoImpl) applyFilter(ctx context.Context, f KeywordFilter) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&model.Keyword{}).
		Where("is_active = ?", true).
		Where("is_hpk = ? AND is_rk = ?", f.IsHpk, f.IsRk)

	if q := strings.TrimSpace(f.Query); q != "" {
		db = db.Where("LOWER(keyword) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.SubCategory1 != "" {
		db = db.Where("sub_category1 = ?", f.SubCategory1)
	}
	if f.SubCategory2 != "" {
		db = db.Where("sub_category2 = ?", f.SubCategory2)
	}
	if f.UploadPeriod != "" {
		db = db.Where("upload_period = ?", f.UploadPeriod)
	}
	return db
}

func (s *keywordRepoImpl) FindCandidates(ctx context.Context, f KeywordFilter) ([]*model.Keyword, error) {
	var rows []*model.Keyword
	err := s.applyFilter(ctx, f).
		Order("keyword ASC").
		Order("search_volume DESC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *keywordRepoImpl) CountDistinct(ctx context.Context, f KeywordFilter) (int64, error) {
	var count int64
	err := s.applyFilter(ctx, f).
		Distinct("keyword").
		Count(&count).Error
	return count, err
}

// DeactivatePartition 软删一个 (周期, 类型) 分区的当前代，返回影响行数
//
// 替换上传先走这里，新行落库前旧代已不可见，读侧短暂空窗可接受，
// 但绝不会同时看到两代数据。
func (s *keywordRepoImpl) DeactivatePartition(ctx context.Context, uploadPeriod string, isHpk, isRk bool) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Keyword{}).
		Where("upload_period = ? AND is_hpk = ? AND is_rk = ? AND is_active = ?", uploadPeriod, isHpk, isRk, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (s *keywordRepoImpl) InsertChunk(ctx context.Context, rows []*model.Keyword) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *keywordRepoImpl) ListActivePeriods(ctx context.Context, isHpk, isRk bool) ([]*PeriodCount, error) {
	var rows []*PeriodCount
	err := s.db.WithContext(ctx).Model(&model.Keyword{}).
		Select("upload_period, COUNT(DISTINCT keyword) AS distinct_keywords").
		Where("is_active = ? AND is_hpk = ? AND is_rk = ?", true, isHpk, isRk).
		Group("upload_period").
		Order("upload_period DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *keywordRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Keyword, error) {
	var row model.Keyword
	err := s.db.WithContext(ctx).First(&row, id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *keywordRepoImpl) UpdateScores(ctx context.Context, id uint64, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.Keyword{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (s *keywordRepoImpl) Deactivate(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Keyword{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
