package kafka

import (
	"SellerLens/internal/api/config"
	"SellerLens/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	activityConsumer sarama.ConsumerGroup
	activityHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	activityRepo repository.ActivityRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	activityConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaActivityConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	activityHandler := NewActivityHandler(activityRepo)

	return &ConsumerManager{
		activityConsumer: activityConsumer,
		activityHandler:  activityHandler,
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaActivityConsumer.Topic
		log.Info("Activity consumer started", "topic", topic)
		for {
			if err := m.activityConsumer.Consume(ctx, []string{topic}, m.activityHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.activityConsumer.Close(); err != nil {
		log.Error("Failed to close activity consumer", "err", err)
	}

	return nil
}
