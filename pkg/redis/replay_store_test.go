package redis_test

import (
	"context"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/biplatform/authkit/pkg/redis"
	"github.com/biplatform/authkit/pkg/totp"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ totp.ReplayGuard = (*redis.ReplayStore)(nil)

func connect(t *testing.T) *goredis.Client {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func uniquePrefix(t *testing.T) string {
	return "test:" + t.Name() + ":" + strconv.FormatInt(time.Now().UnixNano(), 10) + ":"
}

func TestReplayStore_Claim(t *testing.T) {
	client := connect(t)
	ctx := context.Background()
	store := redis.NewReplayStore(client, uniquePrefix(t), time.Minute)

	ok, err := store.Claim(ctx, "user-1", 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, "user-1", 100)
	require.NoError(t, err)
	assert.False(t, ok, "replay of the same step")

	ok, err = store.Claim(ctx, "user-1", 99)
	require.NoError(t, err)
	assert.False(t, ok, "older step")

	ok, err = store.Claim(ctx, "user-1", 101)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, "user-2", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Forget(ctx, "user-1"))
	ok, err = store.Claim(ctx, "user-1", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.Claim(ctx, "", 1)
	assert.ErrorIs(t, err, redis.ErrEmptySubject)
}

func TestReplayStore_TTL(t *testing.T) {
	client := connect(t)
	ctx := context.Background()
	prefix := uniquePrefix(t)
	store := redis.NewReplayStore(client, prefix, 90*time.Second)

	ok, err := store.Claim(ctx, "user", 7)
	require.NoError(t, err)
	require.True(t, ok)

	ttl, err := client.PTTL(ctx, prefix+"user").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 80*time.Second)
	assert.LessOrEqual(t, ttl, 90*time.Second)
}

func TestReplayStore_Concurrent(t *testing.T) {
	client := connect(t)
	store := redis.NewReplayStore(client, uniquePrefix(t), time.Minute)

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, err := store.Claim(context.Background(), "user", 5); err == nil && ok {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), accepted.Load())
}

func TestHealthcheck(t *testing.T) {
	client := connect(t)
	assert.NoError(t, redis.Healthcheck(client)(context.Background()))
}
