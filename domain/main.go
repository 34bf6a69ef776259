package domain

import (
	"github.com/akeren/sunday-signup/config"
	"github.com/akeren/sunday-signup/domain/games"
	"github.com/akeren/sunday-signup/domain/monitoring"
	"github.com/akeren/sunday-signup/domain/players"
	"github.com/akeren/sunday-signup/domain/signup"
	"github.com/akeren/sunday-signup/pkg/factory"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	var cache factory.Cache
	if appConfig.Cache != nil {
		cache = appConfig.Cache
	}

	container := factory.NewFactoryContainer(
		appConfig.DB,
		appConfig.Logger,
		cache,
		appConfig.RouterService.RedisClient(),
	)

	sc := appConfig.Signup

	appConfig.RouterService.MountController(
		monitoring.NewMonitoringControllerFactory(container, appConfig.Sheets, appConfig.Mailer != nil).CreateController(),
	)

	appConfig.RouterService.MountController(
		signup.NewSignupServiceFactory(signup.Dependencies{
			DB:             container.DB,
			Logger:         container.Logger,
			Gateway:        appConfig.Sheets,
			Mailer:         appConfig.Mailer,
			Pricing:        signup.Pricing{Mode: signup.ParsePricingMode(sc.PricingMode), UnitCents: sc.PricePerUnitCents},
			PaymentMethods: signup.BuildPaymentMethods(sc.PaymentHandles),
			Location:       sc.GameLocation,
			RateLimiters:   container.RateLimiterFactory,
		}).CreateController(sc.SignupRequestsPerMinute),
	)

	var gamesCache games.Cache
	var playersCache players.Cache
	if container.Cache != nil {
		gamesCache = container.Cache
		playersCache = container.Cache
	}

	appConfig.RouterService.MountController(
		games.NewGamesServiceFactory(container.Logger, appConfig.Sheets, gamesCache, container.RateLimiterFactory, games.ServiceConfig{
			Action:          sc.SheetsGamesAction,
			CacheTTL:        sc.GamesCacheTTL,
			DefaultTime:     sc.DefaultGameTime,
			DefaultLocation: sc.DefaultGameLocation,
			DefaultCourt:    sc.DefaultGameCourt,
			Location:        sc.GameLocation,
		}).CreateController(),
	)

	appConfig.RouterService.MountController(
		players.NewPlayersServiceFactory(
			container.Logger,
			appConfig.Sheets,
			signup.NewSignupRepository(container.DB),
			playersCache,
			sc.LookupCacheTTL,
			container.RateLimiterFactory,
		).CreateController(),
	)
}
