package kafka

import (
	"SellerLens/internal/model"
	"SellerLens/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// activityEventMessage 埋点网关投递的事件载荷
type activityEventMessage struct {
	UserID     uint64 `json:"user_id"`
	SessionID  string `json:"session_id"`
	EventType  string `json:"event_type"`
	OccurredAt string `json:"occurred_at"` // RFC3339，缺省取消费时刻
}

type ActivityHandler struct {
	activityRepo repository.ActivityRepo
}

func NewActivityHandler(activityRepo repository.ActivityRepo) *ActivityHandler {
	return &ActivityHandler{
		activityRepo: activityRepo,
	}
}

func (s *ActivityHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("activity consumer setup")
	return nil
}

func (s *ActivityHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("activity consumer cleanup")
	return nil
}

func (s *ActivityHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-activity consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-activity process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ActivityHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event activityEventMessage
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 格式损坏的消息重试也救不回来，记日志后放行
		log.ErrorContext(ctx, "unmarshal activity event error", "err", err, "offset", msg.Offset)
		return nil
	}

	if event.SessionID == "" || event.EventType == "" {
		log.WarnContext(ctx, "drop incomplete activity event", "offset", msg.Offset)
		return nil
	}

	occurredAt := time.Now()
	if event.OccurredAt != "" {
		if t, err := time.Parse(time.RFC3339, event.OccurredAt); err == nil {
			occurredAt = t
		}
	}

	err := s.activityRepo.InsertEvent(ctx, &model.ActivityEvent{
		UserID:    event.UserID,
		SessionID: event.SessionID,
		EventType: event.EventType,
		CreatedAt: occurredAt,
	})
	if err != nil {
		return errors.Join(errors.New("insert activity event failed"), err)
	}
	return nil
}
