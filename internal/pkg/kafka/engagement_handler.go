package kafka

import (
	"Inkwell/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// EngagementHandler 消费互动事件，折算为帖子日指标
type EngagementHandler struct {
	metricService service.PostMetricService
}

func NewEngagementHandler(metricService service.PostMetricService) *EngagementHandler {
	return &EngagementHandler{metricService: metricService}
}

func (s *EngagementHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer setup")
	return nil
}

func (s *EngagementHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer cleanup")
	return nil
}

func (s *EngagementHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-engagement consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-engagement process batch error", "err", err)
		return err
	}
	return nil
}

func (s *EngagementHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToEngagementEvent(msg)
	if err != nil {
		// 解析失败的消息重试无意义，直接跳过
		return nil
	}

	switch event.Type {
	case EventTypeView:
		return s.metricService.RecordEngagement(ctx, event.PostID, event.Delta, 0)
	case EventTypeLike:
		return s.metricService.RecordEngagement(ctx, event.PostID, 0, event.Delta)
	default:
		return nil
	}
}
