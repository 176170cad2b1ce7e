package service

import (
	"SellerLens/internal/api/config"
	"SellerLens/internal/api/dto"
	"SellerLens/internal/pkg/consts"
	"SellerLens/internal/pkg/llm"
	"SellerLens/internal/pkg/mongo"
	"SellerLens/internal/pkg/redis"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OptimizerService interface {
	// Compose 流式生成文案，返回推理文本通道与本次会话 ID
	Compose(ctx context.Context, userID uint64, req *dto.OptimizerComposeDTO) (<-chan string, string, error)
	History(ctx context.Context, sessionID string) ([]*dto.OptimizerMessageDTO, error)
	ListSessions(ctx context.Context, userID uint64) ([]string, error)
}

type optimizerServiceImpl struct {
	agent       llm.Agent
	messageRepo mongo.OptimizerMessageRepo
}

func NewOptimizerService(agent llm.Agent, messageRepo mongo.OptimizerMessageRepo) OptimizerService {
	return &optimizerServiceImpl{
		agent:       agent,
		messageRepo: messageRepo,
	}
}

func (s *optimizerServiceImpl) Compose(ctx context.Context, userID uint64, req *dto.OptimizerComposeDTO) (<-chan string, string, error) {
	if !llm.Ready() {
		return nil, "", UnExpectedError
	}

	bucketKey := consts.OptimizerBucketKey + strconv.FormatUint(userID, 10)
	allowed, err := redis.AllowTokenBucket(ctx, bucketKey,
		config.Cfg.Optimizer.BucketCapacity, config.Cfg.Optimizer.RefillPerMin)
	if err != nil {
		log.WarnContext(ctx, "optimizer rate limit check failed", "err", err)
	} else if !allowed {
		return nil, "", ErrRateLimited
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	userInput := s.buildInput(req)
	s.saveMessage(ctx, sessionID, userID, "user", userInput)

	upstream := s.agent.Compose(ctx, userInput)

	out := make(chan string, 20)
	go func() {
		defer close(out)

		var answer strings.Builder
		for chunk := range upstream {
			answer.WriteString(chunk)
			out <- chunk
		}
		// 请求取消后仍要落库，换用独立上下文
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.saveMessage(saveCtx, sessionID, userID, "assistant", answer.String())
	}()

	return out, sessionID, nil
}

func (s *optimizerServiceImpl) buildInput(req *dto.OptimizerComposeDTO) string {
	var builder strings.Builder
	builder.WriteString("商品描述：")
	builder.WriteString(strings.TrimSpace(req.Product))
	if category := strings.TrimSpace(req.Category); category != "" {
		builder.WriteString(fmt.Sprintf("\n所属类目：%s", category))
	}
	if metric := strings.TrimSpace(req.Metric); metric != "" {
		builder.WriteString(fmt.Sprintf("\n参考关键词榜单：%s", metric))
	}
	return builder.String()
}

// saveMessage 历史记录尽力而为，Mongo 不可用不阻塞生成
func (s *optimizerServiceImpl) saveMessage(ctx context.Context, sessionID string, userID uint64, role string, content string) {
	if s.messageRepo == nil || content == "" {
		return
	}
	err := s.messageRepo.SaveMessage(ctx, &mongo.OptimizerMessage{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Content:   content,
	})
	if err != nil {
		log.WarnContext(ctx, "save optimizer message failed", "session", sessionID, "err", err)
	}
}

func (s *optimizerServiceImpl) History(ctx context.Context, sessionID string) ([]*dto.OptimizerMessageDTO, error) {
	if s.messageRepo == nil {
		return nil, nil
	}
	messages, err := s.messageRepo.GetHistory(ctx, sessionID, 50)
	if err != nil {
		return nil, err
	}
	rows := make([]*dto.OptimizerMessageDTO, 0, len(messages))
	for _, msg := range messages {
		rows = append(rows, &dto.OptimizerMessageDTO{
			SessionID: msg.SessionID,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt.Format(time.DateTime),
		})
	}
	return rows, nil
}

func (s *optimizerServiceImpl) ListSessions(ctx context.Context, userID uint64) ([]string, error) {
	if s.messageRepo == nil {
		return nil, nil
	}
	return s.messageRepo.ListSessions(ctx, userID, 20)
}
