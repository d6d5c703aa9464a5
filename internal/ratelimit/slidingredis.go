package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Allower decides whether another request for key fits in the window.
type Allower interface {
	Allow(ctx context.Context, key string, window time.Duration, limit int) (Decision, error)
}

// RedisLimiter counts requests in a sliding window kept in a Redis sorted set
// scored by arrival time in nanoseconds.
type RedisLimiter struct {
	Client *redis.Client
	Prefix string
	Now    func() time.Time
}

// Allow records the request and reports whether the window still has room.
// A nil client or a non-positive limit disables limiting.
func (l RedisLimiter) Allow(ctx context.Context, key string, window time.Duration, limit int) (Decision, error) {
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	reset := now.Add(window)
	if l.Client == nil || limit <= 0 || window <= 0 {
		return Decision{Allowed: true, Remaining: limit, ResetAt: reset}, nil
	}

	setKey := l.Prefix + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := l.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, setKey, "-inf", "("+cutoff)
	pipe.ZAdd(ctx, setKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	card := pipe.ZCard(ctx, setKey)
	pipe.PExpire(ctx, setKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{ResetAt: reset}, err
	}

	count := int(card.Val())
	return Decision{
		Allowed:   count <= limit,
		Remaining: max(0, limit-count),
		ResetAt:   reset,
	}, nil
}
