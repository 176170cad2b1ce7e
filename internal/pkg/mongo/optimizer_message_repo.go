package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OptimizerMessageRepo interface {
	SaveMessage(ctx context.Context, msg *OptimizerMessage) error
	GetHistory(ctx context.Context, sessionID string, limit int) ([]*OptimizerMessage, error)
	ListSessions(ctx context.Context, userID uint64, limit int) ([]string, error)
}

type optimizerMessageRepoImpl struct {
	col *mongo.Collection
}

func NewOptimizerMessageRepo(db *mongo.Database) OptimizerMessageRepo {
	return &optimizerMessageRepoImpl{
		col: db.Collection("optimizer_messages"),
	}
}

// SaveMessage 直接存储
func (s *optimizerMessageRepoImpl) SaveMessage(ctx context.Context, msg *OptimizerMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// GetHistory 纯按时间线拉取最近 limit 条
func (s *optimizerMessageRepoImpl) GetHistory(ctx context.Context, sessionID string, limit int) ([]*OptimizerMessage, error) {
	if limit <= 0 {
		limit = 20
	}

	filter := bson.M{"session_id": sessionID}

	findOptions := options.Find().
		SetSort(bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	messages := make([]*OptimizerMessage, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	// 反转消息列表，保证消息从旧到新排列
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// ListSessions 某用户最近的会话 ID 列表
func (s *optimizerMessageRepoImpl) ListSessions(ctx context.Context, userID uint64, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}

	ids, err := s.col.Distinct(ctx, "session_id", bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}

	sessions := make([]string, 0, len(ids))
	for _, id := range ids {
		if sessionID, ok := id.(string); ok {
			sessions = append(sessions, sessionID)
		}
		if len(sessions) >= limit {
			break
		}
	}
	return sessions, nil
}
