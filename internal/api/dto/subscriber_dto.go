package dto

// SubscribeDTO 订阅/退订入参
type SubscribeDTO struct {
	Email string `json:"email" binding:"required,email"`
}

// SubscriberDTO 订阅者
type SubscriberDTO struct {
	ID        uint64  `json:"id"`
	Email     string  `json:"email"`
	IsActive  bool    `json:"is_active"`
	SyncedAt  *string `json:"synced_at"`
	CreatedAt string  `json:"created_at"`
}
