package kafka

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	engagementConsumer sarama.ConsumerGroup
	engagementHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	metricService service.PostMetricService,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	engagementConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEngagementConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	engagementHandler := NewEngagementHandler(metricService)

	return &ConsumerManager{
		engagementConsumer: engagementConsumer,
		engagementHandler:  engagementHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaEngagementConsumer.Topic
		log.Info("Engagement consumer started", "topic", topic)
		for {
			if err := m.engagementConsumer.Consume(ctx, []string{topic}, m.engagementHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.engagementConsumer.Close(); err != nil {
		log.Error("Failed to close engagement consumer", "err", err)
	}

	return nil
}
