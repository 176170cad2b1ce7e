package dto

// UploadRowDTO 上传批次中的一行，来自已解析的 CSV/Excel 导出
type UploadRowDTO struct {
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
}

// ReplacePeriodDTO 周期替换上传入参
type ReplacePeriodDTO struct {
	Rows []*UploadRowDTO `json:"rows" binding:"required"`
}

// IngestRowErrorDTO 单行导入失败明细
type IngestRowErrorDTO struct {
	RowIndex int    `json:"row_index"`
	Keyword  string `json:"keyword,omitempty"`
	Reason   string `json:"reason"`
}

// UploadResultDTO 周期替换结果，部分失败时 Errors 给出明细
type UploadResultDTO struct {
	Inserted int                  `json:"inserted"`
	Errors   []*IngestRowErrorDTO `json:"errors"`
}

// PeriodCountDTO 周期清单项，计数为去重后的关键词数
type PeriodCountDTO struct {
	Period               string `json:"period"`
	DistinctKeywordCount int64  `json:"distinct_keyword_count"`
	Type                 string `json:"type"`
}

// PeriodOptionDTO 某类型下可选周期的展示项
type PeriodOptionDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// UploadFileDTO 上传归档清单项
type UploadFileDTO struct {
	ID           uint64 `json:"id"`
	UploadPeriod string `json:"upload_period"`
	KeywordType  string `json:"keyword_type"`
	ObjectKey    string `json:"object_key"`
	RowCount     int    `json:"row_count"`
	ErrorCount   int    `json:"error_count"`
	UploadedBy   uint64 `json:"uploaded_by"`
	CreatedAt    string `json:"created_at"`
}
