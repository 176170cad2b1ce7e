package dto

// CategoryNodeDTO 三级类目树节点，每次请求实时聚合，不落库
//
// ID 为路径键：一级是类目名，二级三级用 "::" 连接上级路径
type CategoryNodeDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ParentID     *string `json:"parent_id"`
	KeywordCount int64   `json:"keyword_count"`
}

// CategoryTreeDTO 类目树查询结果，节点平铺，父子关系由 ParentID 表达
type CategoryTreeDTO struct {
	Nodes []*CategoryNodeDTO `json:"nodes"`
}
