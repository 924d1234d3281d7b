package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobopay/bvn-bulk-service/internal/redis"
)

func TestRedisHappyPath(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := miniredis.RunT(t)
	client, err := redis.Open(ctx, "redis://"+s.Addr())
	require.NoError(t, err)

	wg := sync.WaitGroup{}

	ps := NewRedis(client)
	ps.Subscribe(ctx, EventBulkCompleted, func(_ context.Context, payload Message) error {
		defer wg.Done()
		var ev BulkCompletedEvent
		assert.NoError(t, ev.Unmarshal(payload))
		assert.Equal(t, "BLK-1", ev.BulkID)
		assert.Equal(t, "live", ev.ServiceMode)
		assert.Equal(t, 120, ev.Records)
		return nil
	})

	wg.Add(1)
	require.NoError(t, ps.Publish(ctx, EventBulkCompleted, &BulkCompletedEvent{
		BulkID:      "BLK-1",
		ServiceMode: "live",
		Records:     120,
	}))

	wg.Wait()
}

func TestRedisMultipleSubscribers(t *testing.T) {
	const nEvents = 100
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := miniredis.RunT(t)
	client, err := redis.Open(ctx, "redis://"+s.Addr())
	require.NoError(t, err)

	wg := sync.WaitGroup{}
	var count atomic.Int64

	ps := NewRedis(client)
	for i := 0; i < 2; i++ {
		ps.Subscribe(ctx, EventBulkCompleted, func(_ context.Context, _ Message) error {
			defer wg.Done()
			count.Add(1)
			return nil
		})
	}

	for i := 0; i < nEvents; i++ {
		wg.Add(2)
		require.NoError(t, ps.Publish(ctx, EventBulkCompleted, &BulkCompletedEvent{BulkID: "BLK-1"}))
	}

	wg.Wait()
	assert.Equal(t, 2*nEvents, int(count.Load()))
}
