package players

import (
	"time"

	"github.com/akeren/sunday-signup/config/router"
	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/pkg/factory"
	"github.com/akeren/sunday-signup/pkg/ratelimit"
)

type PlayersServiceFactory interface {
	CreateService() PlayerService
	CreateController() *router.RESTController
}

type DefaultPlayersServiceFactory struct {
	logger    *log.Logger
	gateway   LookupGateway
	directory LocalDirectory
	cache     Cache
	cacheTTL  time.Duration
	limiters  factory.RateLimiterFactory
}

func NewPlayersServiceFactory(
	logger *log.Logger,
	gateway LookupGateway,
	directory LocalDirectory,
	cache Cache,
	cacheTTL time.Duration,
	limiters factory.RateLimiterFactory,
) PlayersServiceFactory {
	return &DefaultPlayersServiceFactory{
		logger:    logger,
		gateway:   gateway,
		directory: directory,
		cache:     cache,
		cacheTTL:  cacheTTL,
		limiters:  limiters,
	}
}

func (f *DefaultPlayersServiceFactory) CreateService() PlayerService {
	return NewPlayerService(f.logger, f.gateway, f.directory, f.cache, f.cacheTTL)
}

func (f *DefaultPlayersServiceFactory) CreateController() *router.RESTController {
	var limiter ratelimit.RateLimiter
	if f.limiters != nil {
		limiter = f.limiters.CreateRateLimiter(lookupRequestsPerMinute, time.Minute)
	}
	return NewPlayersController(f.CreateService(), limiter)
}
