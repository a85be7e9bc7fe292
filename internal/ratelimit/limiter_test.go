package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return New(client), mr
}

func TestLimiter_CheckAndIncrement(t *testing.T) {
	t.Run("allows up to the limit and denies past it", func(t *testing.T) {
		limiter, _ := newTestLimiter(t)
		ctx := t.Context()

		for i := 1; i <= 3; i++ {
			allowed, count, err := limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "request %d should be allowed", i)
			assert.Equal(t, int64(i), count)
		}

		allowed, count, err := limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, int64(4), count)
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter, _ := newTestLimiter(t)
		ctx := t.Context()

		allowed, _, err := limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 1, time.Minute)
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, _, err = limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 1, time.Minute)
		require.NoError(t, err)
		require.False(t, allowed)

		allowed, count, err := limiter.CheckAndIncrement(ctx, "login:198.51.100.9", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, int64(1), count)
	})

	t.Run("window expiry resets the count", func(t *testing.T) {
		limiter, mr := newTestLimiter(t)
		ctx := t.Context()

		allowed, _, err := limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 1, time.Minute)
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, _, err = limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 1, time.Minute)
		require.NoError(t, err)
		require.False(t, allowed)

		mr.FastForward(time.Minute + time.Second)

		allowed, count, err := limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, int64(1), count)
	})

	t.Run("denied requests keep incrementing the count", func(t *testing.T) {
		limiter, _ := newTestLimiter(t)
		ctx := t.Context()

		for i := 0; i < 5; i++ {
			_, _, err := limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 2, time.Minute)
			require.NoError(t, err)
		}

		count, err := limiter.CurrentCount(ctx, "login:203.0.113.7")
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	t.Run("a counter without a deadline picks one up", func(t *testing.T) {
		limiter, mr := newTestLimiter(t)
		ctx := t.Context()

		// A key stranded without a TTL must not lock the client out forever.
		require.NoError(t, mr.Set("login:203.0.113.7", "5"))
		require.Equal(t, time.Duration(0), mr.TTL("login:203.0.113.7"))

		_, count, err := limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 3, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(6), count)
		assert.Greater(t, mr.TTL("login:203.0.113.7"), time.Duration(0))
	})

	t.Run("later hits keep the first hit's deadline", func(t *testing.T) {
		limiter, mr := newTestLimiter(t)
		ctx := t.Context()

		_, _, err := limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 3, time.Minute)
		require.NoError(t, err)

		mr.FastForward(30 * time.Second)

		_, _, err = limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 3, time.Minute)
		require.NoError(t, err)
		assert.LessOrEqual(t, mr.TTL("login:203.0.113.7"), 30*time.Second)
	})

	t.Run("redis down reports unavailable", func(t *testing.T) {
		limiter, mr := newTestLimiter(t)
		mr.Close()

		_, _, err := limiter.CheckAndIncrement(t.Context(), "login:203.0.113.7", 1, time.Minute)
		assert.ErrorIs(t, err, ErrRedisUnavailable)
	})
}

func TestLimiter_CurrentCount(t *testing.T) {
	t.Run("missing key reads as zero", func(t *testing.T) {
		limiter, _ := newTestLimiter(t)

		count, err := limiter.CurrentCount(t.Context(), "login:203.0.113.7")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("returns the attempted count", func(t *testing.T) {
		limiter, _ := newTestLimiter(t)
		ctx := t.Context()

		for i := 0; i < 3; i++ {
			_, _, err := limiter.CheckAndIncrement(ctx, "login:203.0.113.7", 10, time.Minute)
			require.NoError(t, err)
		}

		count, err := limiter.CurrentCount(ctx, "login:203.0.113.7")
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}
