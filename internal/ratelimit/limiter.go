package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/Siroshun09/serrors"
	"github.com/redis/go-redis/v9"
)

var ErrRedisUnavailable = errors.New("redis unavailable")

// Limiter enforces fixed-window request budgets using Redis counters.
// The window starts at the first hit for a key and ends TTL later; INCR is
// atomic, so two concurrent callers can never both take the last slot.
type Limiter struct {
	redis redis.UniversalClient
}

func New(redisClient redis.UniversalClient) *Limiter {
	return &Limiter{redis: redisClient}
}

// CheckAndIncrement counts this request against the key's window and reports
// whether it is within budget, together with the count after increment. Denied
// requests still increment, so CurrentCount reflects the true attempted count.
func (l *Limiter) CheckAndIncrement(ctx context.Context, key string, limitCount int, windowSize time.Duration) (bool, int64, error) {
	// INCR and EXPIRE travel in one MULTI/EXEC so a crash between them cannot
	// leave a counter without a deadline. EXPIRE NX keeps the deadline of the
	// first hit: later hits in the window never extend it, and a key that
	// somehow lost its TTL picks one up on the next hit.
	var incr *redis.IntCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, windowSize)
		return nil
	})
	if err != nil {
		return false, 0, serrors.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	count := incr.Val()
	return count <= int64(limitCount), count, nil
}

// CurrentCount returns the attempted count for the key in the current window.
// A missing key reads as zero.
func (l *Limiter) CurrentCount(ctx context.Context, key string) (int64, error) {
	count, err := l.redis.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, serrors.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return count, nil
}
