package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockPublishSubscribe(t *testing.T) {
	ctx := context.Background()
	client := NewMock()

	var received []BulkCompletedEvent
	client.Subscribe(ctx, EventBulkCompleted, func(_ context.Context, msg Message) error {
		var ev BulkCompletedEvent
		if err := ev.Unmarshal(msg); err != nil {
			return err
		}
		received = append(received, ev)
		return nil
	})

	ev := BulkCompletedEvent{BulkID: "BLK-1", ServiceMode: "live", Records: 3}
	require.NoError(t, client.Publish(ctx, EventBulkCompleted, &ev))

	require.Len(t, received, 1)
	assert.Equal(t, "BLK-1", received[0].BulkID)
	assert.Equal(t, "live", received[0].ServiceMode)
	assert.Equal(t, 3, received[0].Records)

	assert.Len(t, client.Published(EventBulkCompleted), 1)
	assert.Empty(t, client.Published("other-topic"))
}
