package games

import (
	"time"

	"github.com/akeren/sunday-signup/config/router"
	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/pkg/factory"
	"github.com/akeren/sunday-signup/pkg/ratelimit"
)

type GamesServiceFactory interface {
	CreateService() GameService
	CreateController() *router.RESTController
}

type DefaultGamesServiceFactory struct {
	logger   *log.Logger
	gateway  GamesGateway
	cache    Cache
	limiters factory.RateLimiterFactory
	cfg      ServiceConfig
}

// NewGamesServiceFactory accepts a nil cache and a nil limiter factory.
func NewGamesServiceFactory(logger *log.Logger, gateway GamesGateway, cache Cache, limiters factory.RateLimiterFactory, cfg ServiceConfig) GamesServiceFactory {
	return &DefaultGamesServiceFactory{logger: logger, gateway: gateway, cache: cache, limiters: limiters, cfg: cfg}
}

func (f *DefaultGamesServiceFactory) CreateService() GameService {
	return NewGameService(f.logger, f.gateway, f.cache, f.cfg)
}

func (f *DefaultGamesServiceFactory) CreateController() *router.RESTController {
	var limiter ratelimit.RateLimiter
	if f.limiters != nil {
		limiter = f.limiters.CreateRateLimiter(gamesRequestsPerMinute, time.Minute)
	}
	return NewGamesController(f.CreateService(), limiter)
}
