// Package factory bundles the shared collaborators handed to every domain
// controller when it is mounted.
package factory

import (
	"context"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/pkg/ratelimit"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Cache is the key/value surface domains may use for short-lived lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type RateLimiterFactory interface {
	CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter
}

// DefaultRateLimiterFactory creates Redis-backed limiters when a client is
// available and in-memory ones otherwise.
type DefaultRateLimiterFactory struct {
	redis  *redis.Client
	logger ratelimit.Logger
}

func NewDefaultRateLimiterFactory(client *redis.Client, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	return &DefaultRateLimiterFactory{redis: client, logger: logger}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: requests,
		Window:   window,
		Redis:    f.redis,
		Logger:   f.logger,
	})
}

type FactoryContainer struct {
	DB     *gorm.DB
	Logger *log.Logger
	// Cache is nil when Redis is not configured.
	Cache              Cache
	RateLimiterFactory RateLimiterFactory
}

func NewFactoryContainer(db *gorm.DB, logger *log.Logger, cache Cache, redisClient *redis.Client) *FactoryContainer {
	return &FactoryContainer{
		DB:                 db,
		Logger:             logger,
		Cache:              cache,
		RateLimiterFactory: NewDefaultRateLimiterFactory(redisClient, logger),
	}
}
