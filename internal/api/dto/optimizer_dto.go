package dto

// OptimizerComposeDTO 文案生成入参
type OptimizerComposeDTO struct {
	Product   string `form:"product" binding:"required"`
	Category  string `form:"category"`
	Metric    string `form:"metric"`
	SessionID string `form:"session_id"`
}

// OptimizerMessageDTO 历史会话消息
type OptimizerMessageDTO struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
