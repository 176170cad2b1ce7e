package mongo

import (
	"time"
)

// OptimizerMessage 文案优化会话的一条消息
type OptimizerMessage struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	SessionID string    `bson:"session_id" json:"sessionId"`
	UserID    uint64    `bson:"user_id" json:"userId"`
	Role      string    `bson:"role" json:"role"` // user / assistant
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
