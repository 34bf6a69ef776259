// Package ratelimit throttles form submissions and lookups per client.
package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Logger interface {
	Error(msg string, args ...any)
}

// RateLimiter reports whether the caller identified by key has used up its
// budget for the current window.
type RateLimiter interface {
	GetLimitDetails() (int, time.Duration)
	IsLimited(ctx context.Context, key string) (bool, error)
	Close() error
}

// DefaultKeyPrefix namespaces limiter keys in a shared Redis.
const DefaultKeyPrefix = "sunday-signup:ratelimit:"

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	// Redis selects the sliding-window limiter; nil keeps counters in memory.
	Redis     *redis.Client
	KeyPrefix string
	Logger    Logger
}

func NewRateLimiter(config *RateLimitConfig) RateLimiter {
	requests, window := normalize(config.Requests, config.Window)

	if config.Redis != nil {
		prefix := config.KeyPrefix
		if prefix == "" {
			prefix = DefaultKeyPrefix
		}
		return &RedisRateLimiter{
			client:    config.Redis,
			requests:  requests,
			window:    window,
			keyPrefix: prefix,
			logger:    config.Logger,
		}
	}
	return NewInMemoryRateLimiter(requests, window)
}

func normalize(requests int, window time.Duration) (int, time.Duration) {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return requests, window
}
