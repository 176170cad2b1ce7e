package model

import (
	"time"

	"SellerLens/internal/pkg/consts"
)

// Keyword 一条导入的关键词表现记录
//
// 唯一性作用域是 (keyword, upload_period, is_hpk, is_rk)，同一关键词可以
// 跨周期、跨类型重复出现，甚至在同一周期内因叶子类目导出重叠而重复。
// 读路径按 keyword 去重，保留 search_volume 最高的那一行。
type Keyword struct {
	ID           uint64 `gorm:"primaryKey"`
	Keyword      string `gorm:"type:varchar(255);not null;index:idx_keyword_text" json:"keyword"`
	SearchVolume int64  `gorm:"not null;default:0" json:"search_volume"`

	// 数值评分以文本存储，保留小数精度，部分类型不填充
	ProductClickScore *string `gorm:"type:varchar(32)" json:"product_click_score"`
	SkuSalesScore     *string `gorm:"type:varchar(32)" json:"sku_sales_score"`
	CtrScore          *string `gorm:"type:varchar(32)" json:"ctr_score"`
	CtorScore         *string `gorm:"type:varchar(32)" json:"ctor_score"`
	AveragePrice      *string `gorm:"type:varchar(32)" json:"average_price"`

	AvailableProducts int64 `gorm:"not null;default:0" json:"available_products"`
	Rank              *int  `json:"rank"` // 仅 RK 行填充

	Category     *string `gorm:"type:varchar(255);index:idx_keyword_category" json:"category"`
	SubCategory1 *string `gorm:"type:varchar(255)" json:"sub_category1"`
	SubCategory2 *string `gorm:"type:varchar(255)" json:"sub_category2"`
	CategoryID   *uint64 `json:"category_id"` // 旧版类目外键，层级现以文本字段为准

	UploadPeriod string `gorm:"type:varchar(32);not null;index:idx_keyword_partition,priority:1" json:"upload_period"`
	IsHpk        bool   `gorm:"not null;default:false;index:idx_keyword_partition,priority:2" json:"is_hpk"`
	IsRk         bool   `gorm:"not null;default:false;index:idx_keyword_partition,priority:3" json:"is_rk"`
	IsActive     bool   `gorm:"not null;default:true;index:idx_keyword_partition,priority:4" json:"is_active"`

	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Keyword) TableName() string {
	return "keywords"
}

// KeywordType 根据类型标志位反推关键词类型
func (s *Keyword) KeywordType() string {
	switch {
	case s.IsHpk:
		return consts.KeywordTypeHpk
	case s.IsRk:
		return consts.KeywordTypeRk
	default:
		return consts.KeywordTypeRegular
	}
}

// FlagsForType 将上传类型映射为互斥的类型标志位
func FlagsForType(keywordType string) (isHpk bool, isRk bool, ok bool) {
	switch keywordType {
	case consts.KeywordTypeRegular:
		return false, false, true
	case consts.KeywordTypeHpk:
		return true, false, true
	case consts.KeywordTypeRk:
		return false, true, true
	default:
		return false, false, false
	}
}

// FlagsForMetric 将搜索指标映射为类型标志位，未识别的指标一律按 top 处理
func FlagsForMetric(metric string) (isHpk bool, isRk bool) {
	switch metric {
	case consts.SearchMetricHighPotential:
		return true, false
	case consts.SearchMetricRising:
		return false, true
	default:
		return false, false
	}
}
