package signup

import (
	"time"

	"github.com/akeren/sunday-signup/config/router"
	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/notify"
	"github.com/akeren/sunday-signup/pkg/factory"
	"github.com/akeren/sunday-signup/pkg/ratelimit"
	"gorm.io/gorm"
)

type Dependencies struct {
	DB             *gorm.DB
	Logger         *log.Logger
	Gateway        SheetsGateway
	Mailer         notify.EmailSender
	Pricing        Pricing
	PaymentMethods []PaymentMethod
	Location       *time.Location
	RateLimiters   factory.RateLimiterFactory
}

type SignupServiceFactory interface {
	CreateService(metrics *Metrics) SignupService
	CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter
	CreateController(submissionsPerMinute int) *router.RESTController
}

type DefaultSignupServiceFactory struct {
	deps Dependencies
}

func NewSignupServiceFactory(deps Dependencies) SignupServiceFactory {
	return &DefaultSignupServiceFactory{deps: deps}
}

func (f *DefaultSignupServiceFactory) CreateService(metrics *Metrics) SignupService {
	repository := NewSignupRepository(f.deps.DB)
	return NewSignupService(f.deps.Logger, repository, f.deps.Gateway, ServiceConfig{
		Pricing:        f.deps.Pricing,
		PaymentMethods: f.deps.PaymentMethods,
		Mailer:         f.deps.Mailer,
		Metrics:        metrics,
		Location:       f.deps.Location,
	})
}

func (f *DefaultSignupServiceFactory) CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter {
	if f.deps.RateLimiters == nil {
		return ratelimit.NewInMemoryRateLimiter(requests, window)
	}
	return f.deps.RateLimiters.CreateRateLimiter(requests, window)
}

func (f *DefaultSignupServiceFactory) CreateController(submissionsPerMinute int) *router.RESTController {
	return NewSignupController(f, submissionsPerMinute)
}
