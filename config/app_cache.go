package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	pkgredis "github.com/akeren/sunday-signup/pkg/redis"
	"github.com/akeren/sunday-signup/pkg/utils"
	"github.com/go-redis/redis/v8"
)

// Cache holds upcoming games and returning-player lookups.
type Cache interface {
	// Get returns ("", nil) when a key is not found.
	Get(ctx context.Context, key string) (string, error)
	// Set uses ttl=0 for no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

var ErrCacheNotConfigured = errors.New("cache: neither REDIS_URL nor REDIS_HOST is set")

type CacheConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewCacheConfig reads REDIS_URL when present, otherwise the REDIS_HOST
// family of variables.
func NewCacheConfig() (*CacheConfig, error) {
	cc := &CacheConfig{
		KeyPrefix: utils.GetEnvTrimmedOrDefault("REDIS_KEY_PREFIX", "sunday-signup:"),
	}

	if rawURL := utils.GetEnvTrimmed("REDIS_URL"); rawURL != "" {
		opts, err := redis.ParseURL(rawURL)
		if err != nil {
			return nil, fmt.Errorf("cache: invalid REDIS_URL: %w", err)
		}
		host, port, err := net.SplitHostPort(opts.Addr)
		if err != nil {
			return nil, fmt.Errorf("cache: invalid REDIS_URL address: %w", err)
		}
		cc.Host, cc.Port, cc.Password, cc.DB = host, port, opts.Password, opts.DB
		return cc, nil
	}

	db, err := strconv.Atoi(utils.GetEnvTrimmedOrDefault("REDIS_DB", "0"))
	if err != nil || db < 0 {
		db = 0
	}
	cc.Host = utils.GetEnvTrimmed("REDIS_HOST")
	cc.Port = utils.GetEnvTrimmedOrDefault("REDIS_PORT", "6379")
	cc.Password = os.Getenv("REDIS_PASSWORD")
	cc.DB = db
	return cc, nil
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc != nil && cc.Host != ""
}

func (cc *CacheConfig) NewCache(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		return nil, ErrCacheNotConfigured
	}

	cache, err := pkgredis.NewRedisCache(&pkgredis.Config{
		Host:      cc.Host,
		Port:      cc.Port,
		Password:  cc.Password,
		DB:        cc.DB,
		KeyPrefix: cc.KeyPrefix,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Cache (Redis) connected", "addr", net.JoinHostPort(cc.Host, cc.Port), "db", cc.DB)
	return cache, nil
}

// NewCacheFromEnv returns nil when Redis is not configured or unreachable. The
// service then reads games and players straight from the spreadsheet endpoint
// and rate limits in memory.
func NewCacheFromEnv(logger *log.Logger) Cache {
	cc, err := NewCacheConfig()
	if err != nil {
		logger.Error("Ignoring cache configuration", "error", err)
		return nil
	}
	if !cc.IsConfigured() {
		logger.Info("Cache (Redis) is not configured; proceeding without external cache")
		return nil
	}

	cache, err := cc.NewCache(logger)
	if err != nil {
		logger.Error("Failed to create Cache (Redis); proceeding without external cache", "error", err)
		return nil
	}
	return cache
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		return nil
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
		return err
	}

	logger.Info("Cache connection closed")
	return nil
}
