package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
)

func caches(t *testing.T) map[string]Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]Cache{
		"memory": NewMemoryCache(),
		"redis":  NewRedisCache(rdb),
	}
}

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()

	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			entry := domain.LookupEntry{
				SearchParameter: "12345678901",
				FirstName:       "ADA",
				Surname:         "OKORO",
			}
			require.NoError(t, c.Set(ctx, "bvn-lookup-12345678901", entry, time.Minute))

			var got domain.LookupEntry
			require.True(t, c.Get(ctx, "bvn-lookup-12345678901", &got))
			assert.Equal(t, entry.SearchParameter, got.SearchParameter)
			assert.Equal(t, entry.FirstName, got.FirstName)
			assert.Equal(t, entry.Surname, got.Surname)

			assert.True(t, c.Exists(ctx, "bvn-lookup-12345678901"))
		})
	}
}

func TestCacheGetMissingKey(t *testing.T) {
	ctx := context.Background()

	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			var got domain.LookupEntry
			assert.False(t, c.Get(ctx, "unknown", &got))
			assert.False(t, c.Exists(ctx, "unknown"))
		})
	}
}

func TestCacheDelete(t *testing.T) {
	ctx := context.Background()

	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, "key", "value", time.Minute))
			require.True(t, c.Exists(ctx, "key"))

			require.NoError(t, c.Delete(ctx, "key"))
			assert.False(t, c.Exists(ctx, "key"))
		})
	}
}
