package config

import (
	"context"
	"time"

	"github.com/akeren/sunday-signup/config/router"
	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/internal/notify"
	"github.com/akeren/sunday-signup/internal/sheets"
	"github.com/akeren/sunday-signup/pkg/constants"
	"github.com/akeren/sunday-signup/pkg/utils"
	"gorm.io/gorm"
)

// ApplicationConfig is everything the domain packages are wired from.
type ApplicationConfig struct {
	DB            *gorm.DB
	RouterService *router.RouterService
	Logger        *log.Logger
	// Cache is nil when Redis is not configured.
	Cache  Cache
	Config *AppConfig
	Signup *SignupConfig
	Sheets *sheets.Client
	// Mailer is nil when confirmation emails are disabled.
	Mailer          notify.EmailSender
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

func NewAppConfig() *AppConfig {
	cfg := &AppConfig{
		RateLimitRequests: int(utils.GetEnvInt64OrDefault("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests)),
		RateLimitWindow:   utils.GetEnvDurationOrDefault("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow),
		RequestTimeout:    utils.GetEnvDurationOrDefault("REQUEST_TIMEOUT", router.DefaultTimeoutDuration),
	}

	if cfg.RateLimitRequests <= 0 {
		cfg.RateLimitRequests = constants.DefaultRateLimitRequests
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = constants.DefaultRateLimitWindow
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = router.DefaultTimeoutDuration
	}
	return cfg
}

// Cleanup releases resources in the reverse order LoadApplicationConfiguration
// acquired them.
func (ac *ApplicationConfig) Cleanup() {
	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	_ = CloseCache(ac.Cache, ac.Logger)

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to flush traces", "error", err)
		}
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	ac := &ApplicationConfig{Logger: logger, Config: NewAppConfig()}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}
	ac.TracingShutdown = tracingShutdown

	if ac.DB, err = NewDatabase(logger, NewDBConfigFromEnv()); err != nil {
		ac.Cleanup()
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, ac.DB, models.ModelRegistry...); err != nil {
			ac.Cleanup()
			return nil, err
		}
	}

	ac.Cache = NewCacheFromEnv(logger)
	ac.Signup = NewSignupConfig(logger)
	ac.Sheets = ac.Signup.NewSheetsClient(logger)
	ac.Mailer = ac.Signup.NewEmailSender(logger)

	ac.RouterService = router.CreateRouterService(logger, ac.Cache, &router.RouterConfig{
		RateLimitRequests: ac.Config.RateLimitRequests,
		RateLimitWindow:   ac.Config.RateLimitWindow,
		RequestTimeout:    ac.Config.RequestTimeout,
	})

	logger.Info("Application configuration loaded",
		"sheets_configured", ac.Sheets.Configured(),
		"cache_enabled", ac.Cache != nil,
		"email_enabled", ac.Mailer != nil,
	)
	return ac, nil
}
