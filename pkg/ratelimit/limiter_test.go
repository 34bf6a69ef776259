package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRateLimiter_IsPerKey(t *testing.T) {
	ctx := context.Background()
	limiter := NewInMemoryRateLimiter(1, time.Minute)

	limited, err := limiter.IsLimited(ctx, "signup:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, limited)

	limited, err = limiter.IsLimited(ctx, "signup:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, limited, "second immediate request should be limited")

	limited, err = limiter.IsLimited(ctx, "signup:10.0.0.2")
	require.NoError(t, err)
	assert.False(t, limited, "other clients keep their own budget")
}

func TestInMemoryRateLimiter_RefillsOverWindow(t *testing.T) {
	ctx := context.Background()
	limiter := NewInMemoryRateLimiter(2, time.Minute)
	current := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 2; i++ {
		limited, err := limiter.IsLimited(ctx, "k")
		require.NoError(t, err)
		assert.False(t, limited)
	}
	limited, _ := limiter.IsLimited(ctx, "k")
	assert.True(t, limited)

	current = current.Add(30 * time.Second)
	limited, _ = limiter.IsLimited(ctx, "k")
	assert.False(t, limited, "one token refills every half window")
}

func TestInMemoryRateLimiter_SweepsIdleKeys(t *testing.T) {
	ctx := context.Background()
	limiter := NewInMemoryRateLimiter(5, time.Second)
	current := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	_, _ = limiter.IsLimited(ctx, "idle")
	current = current.Add(time.Minute)
	for i := 1; i < sweepEvery; i++ {
		_, _ = limiter.IsLimited(ctx, "busy")
	}

	assert.Equal(t, 1, limiter.Size())
}

func TestNewRateLimiter_NormalizesConfig(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{})

	requests, window := limiter.GetLimitDetails()
	assert.Equal(t, 1, requests)
	assert.Equal(t, time.Minute, window)
	assert.IsType(t, &InMemoryRateLimiter{}, limiter)
}

func TestRedisRateLimiter_SlidingWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	limiter := NewRateLimiter(&RateLimitConfig{Requests: 2, Window: time.Minute, Redis: client})
	require.IsType(t, &RedisRateLimiter{}, limiter)

	for i := 0; i < 2; i++ {
		limited, err := limiter.IsLimited(ctx, "POST:/v1/signup:10.0.0.1")
		require.NoError(t, err)
		assert.False(t, limited)
	}

	limited, err := limiter.IsLimited(ctx, "POST:/v1/signup:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, limited)

	limited, err = limiter.IsLimited(ctx, "POST:/v1/signup:10.0.0.2")
	require.NoError(t, err)
	assert.False(t, limited)

	assert.True(t, mr.Exists(DefaultKeyPrefix+"POST:/v1/signup:10.0.0.1"))
}

func TestRedisRateLimiter_ReportsBackendErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisRateLimiter(client, 5, time.Minute, nil)
	mr.Close()

	limited, err := limiter.IsLimited(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, limited)
}
