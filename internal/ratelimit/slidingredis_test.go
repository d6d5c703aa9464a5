package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLimiterSlidingWindow(t *testing.T) {
	_, client := newTestClient(t)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := RedisLimiter{Client: client, Prefix: "test:", Now: func() time.Time { return clock }}

	ctx := context.Background()
	window := 2 * time.Second
	limit := 2

	for i := 0; i < limit; i++ {
		decision, err := limiter.Allow(ctx, "key", window, limit)
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "request %d", i)
		assert.Equal(t, limit-(i+1), decision.Remaining)
	}

	decision, err := limiter.Allow(ctx, "key", window, limit)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Zero(t, decision.Remaining)
	assert.Equal(t, clock.Add(window), decision.ResetAt)

	clock = clock.Add(window + time.Millisecond)
	decision, err = limiter.Allow(ctx, "key", window, limit)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestRedisLimiterKeysAreIndependent(t *testing.T) {
	_, client := newTestClient(t)
	limiter := RedisLimiter{Client: client, Prefix: "test:"}
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "a", time.Minute, 1)
	require.NoError(t, err)
	other, err := limiter.Allow(ctx, "b", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.True(t, other.Allowed)
}

func TestRedisLimiterDisabled(t *testing.T) {
	decision, err := RedisLimiter{}.Allow(context.Background(), "key", time.Second, 5)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 5, decision.Remaining)
}
