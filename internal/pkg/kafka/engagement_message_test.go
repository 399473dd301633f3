package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEngagementEvent(t *testing.T) {
	payload, err := json.Marshal(&EngagementEvent{
		Type:       EventTypeLike,
		PostID:     7,
		Delta:      -1,
		OccurredAt: 1700000000,
	})
	require.NoError(t, err)

	event, err := ToEngagementEvent(&sarama.ConsumerMessage{Value: payload})
	require.NoError(t, err)
	assert.Equal(t, EventTypeLike, event.Type)
	assert.EqualValues(t, 7, event.PostID)
	assert.Equal(t, -1, event.Delta)
}

func TestToEngagementEventInvalid(t *testing.T) {
	_, err := ToEngagementEvent(&sarama.ConsumerMessage{Value: []byte("not json")})
	assert.Error(t, err)

	payload, err := json.Marshal(&EngagementEvent{Type: EventTypeView})
	require.NoError(t, err)
	_, err = ToEngagementEvent(&sarama.ConsumerMessage{Value: payload})
	assert.Error(t, err)
}
