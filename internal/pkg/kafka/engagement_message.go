package kafka

import (
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	EventTypeView = "view"
	EventTypeLike = "like"
)

// EngagementEvent 帖子互动事件
type EngagementEvent struct {
	Type       string `json:"type"`
	PostID     uint64 `json:"post_id"`
	Delta      int    `json:"delta"`
	OccurredAt int64  `json:"occurred_at"`
}

// ToEngagementEvent 将kafka消息转换为互动事件结构体
func ToEngagementEvent(msg *sarama.ConsumerMessage) (*EngagementEvent, error) {
	var event EngagementEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("unmarshal engagement event error", "err", err)
		return nil, err
	}

	if event.PostID == 0 {
		return nil, errors.New("post id is empty")
	}

	return &event, nil
}
