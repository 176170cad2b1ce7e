package consts

// 关键词类型，对应上传分区的三种批次
const (
	KeywordTypeRegular = "regular"
	KeywordTypeHpk     = "hpk"
	KeywordTypeRk      = "rk"
)

// 搜索指标，决定类型过滤与默认排序
const (
	SearchMetricTop           = "top"
	SearchMetricHighPotential = "high-potential"
	SearchMetricRising        = "rising"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// InsertChunkSize 批量导入单个事务的行数上限
const InsertChunkSize = 100

// ActivityEvent 类型
const (
	ActivityEventSearch    = "search"
	ActivityEventPageView  = "page_view"
	ActivityEventOptimizer = "optimizer_run"
)
