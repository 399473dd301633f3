package kafka

import (
	"Inkwell/internal/api/config"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EngagementProducer 互动事件生产者。发送失败只记日志，
// 事件流水仅服务于日指标统计，不阻断主流程。
type EngagementProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEngagementProducer(cfg *config.Config) (*EngagementProducer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &EngagementProducer{
		producer: producer,
		topic:    cfg.Kafka.Producer.Topic,
	}, nil
}

func (p *EngagementProducer) PublishView(ctx context.Context, postID uint64) {
	p.publish(ctx, &EngagementEvent{
		Type:       EventTypeView,
		PostID:     postID,
		Delta:      1,
		OccurredAt: time.Now().Unix(),
	})
}

func (p *EngagementProducer) PublishLike(ctx context.Context, postID uint64, delta int) {
	p.publish(ctx, &EngagementEvent{
		Type:       EventTypeLike,
		PostID:     postID,
		Delta:      delta,
		OccurredAt: time.Now().Unix(),
	})
}

func (p *EngagementProducer) publish(ctx context.Context, event *EngagementEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "互动事件序列化失败", "err", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		// 按帖子分区，保证同一帖子事件有序
		Key:   sarama.StringEncoder(strconv.FormatUint(event.PostID, 10)),
		Value: sarama.ByteEncoder(value),
	}

	if _, _, err = p.producer.SendMessage(msg); err != nil {
		log.ErrorContext(ctx, "互动事件发送失败", "type", event.Type, "postID", event.PostID, "err", err)
	}
}

func (p *EngagementProducer) Close() error {
	return p.producer.Close()
}
