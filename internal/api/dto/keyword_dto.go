package dto

// KeywordSearchDTO 关键词搜索入参
type KeywordSearchDTO struct {
	Query        string `form:"query"`
	Category     string `form:"category"`
	SubCategory1 string `form:"sub_category1"`
	SubCategory2 string `form:"sub_category2"`
	UploadPeriod string `form:"upload_period"`
	Metric       string `form:"metric"`
	Sort         string `form:"sort"` // "field:dir,field:dir"
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

// KeywordDTO 搜索结果行
type KeywordDTO struct {
	ID                uint64  `json:"id"`
	Keyword           string  `json:"keyword"`
	SearchVolume      int64   `json:"search_volume"`
	ProductClickScore *string `json:"product_click_score"`
	SkuSalesScore     *string `json:"sku_sales_score"`
	CtrScore          *string `json:"ctr_score"`
	CtorScore         *string `json:"ctor_score"`
	AveragePrice      *string `json:"average_price"`
	AvailableProducts int64   `json:"available_products"`
	Rank              *int    `json:"rank"`
	Category          *string `json:"category"`
	SubCategory1      *string `json:"sub_category1"`
	SubCategory2      *string `json:"sub_category2"`
	UploadPeriod      string  `json:"upload_period"`
}

// KeywordPageDTO 去重后的分页结果，Total 为过滤条件下去重关键词总数
type KeywordPageDTO struct {
	Rows  []*KeywordDTO `json:"rows"`
	Total int64         `json:"total"`
}

// KeywordScoresDTO 单行评分编辑入参
type KeywordScoresDTO struct {
	SearchVolume      *int64  `json:"search_volume" validate:"omitempty,min=0"`
	ProductClickScore *string `json:"product_click_score"`
	SkuSalesScore     *string `json:"sku_sales_score"`
	CtrScore          *string `json:"ctr_score"`
	CtorScore         *string `json:"ctor_score"`
	AveragePrice      *string `json:"average_price"`
	AvailableProducts *int64  `json:"available_products" validate:"omitempty,min=0"`
}
