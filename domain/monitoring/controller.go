package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/akeren/sunday-signup/config/router"
	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/pkg/circuitbreaker"
	"github.com/akeren/sunday-signup/pkg/ratelimit"
	"gorm.io/gorm"
)

const healthCheckTimeout = 3 * time.Second

type Cache interface {
	Ping(ctx context.Context) error
}

// SheetsProbe reports on the spreadsheet endpoint without calling it.
type SheetsProbe interface {
	Configured() bool
	BreakerState() circuitbreaker.CircuitState
}

type HealthStatus struct {
	Database int    `json:"database"` // 1 = healthy, 0 = unhealthy
	Cache    int    `json:"cache"`    // 1 = healthy, 0 = unhealthy/not configured
	Storage  int    `json:"storage"`  // 1 = sheet reachable, 0 = test mode or breaker open
	Breaker  string `json:"breaker"`
	Email    int    `json:"email"` // 1 = confirmation emails enabled
	Uptime   int    `json:"uptime"`
}

type MonitoringController struct {
	db           *gorm.DB
	logger       *log.Logger
	cache        Cache
	sheets       SheetsProbe
	emailEnabled bool
	startTime    time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger, cache Cache, sheets SheetsProbe, emailEnabled bool, limiter ratelimit.RateLimiter) *router.RESTController {
	ctrl := &MonitoringController{
		db:           db,
		logger:       logger,
		cache:        cache,
		sheets:       sheets,
		emailEnabled: emailEnabled,
		startTime:    time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			if limiter == nil {
				limiter = ratelimit.NewInMemoryRateLimiter(monitoringRequestsPerMinute, time.Minute)
			}

			routerService.AddGetHandler(controller, limiter, "", func(c *router.RequestContext) *router.ServiceResult {
				return router.OKResult("Sunday signup service is operational.", "Monitoring successful")
			})

			routerService.AddGetHandler(controller, limiter, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

// More restrictive than the default limit; health is polled, not browsed.
const monitoringRequestsPerMinute = 10

func (ctrl *MonitoringController) healthCheck(routerService *router.RouterService, c *router.RequestContext) *router.ServiceResult {
	logger := routerService.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := ctrl.performHealthChecks(ctx, logger)

	code := http.StatusOK
	if status.Database == 0 {
		code = http.StatusServiceUnavailable
	}

	return &router.ServiceResult{
		StatusCode: code,
		Data:       status,
		Message:    "sunday-signup health check completed",
	}
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	if ctrl.checkDatabase(ctx) {
		status.Database = 1
	} else {
		logger.Error("Database health check failed")
	}

	switch {
	case ctrl.cache == nil:
		logger.Debug("Cache not configured, cache health check skipped")
	case ctrl.cache.Ping(ctx) == nil:
		status.Cache = 1
	default:
		logger.Error("Cache health check failed")
	}

	status.Breaker = circuitbreaker.Closed.String()
	if ctrl.sheets != nil {
		state := ctrl.sheets.BreakerState()
		status.Breaker = state.String()
		if ctrl.sheets.Configured() && state != circuitbreaker.Open {
			status.Storage = 1
		}
		if state == circuitbreaker.Open {
			logger.Warn("Spreadsheet endpoint circuit breaker is open")
		}
	}

	if ctrl.emailEnabled {
		status.Email = 1
	}

	return status
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	if ctrl.db == nil {
		return false
	}
	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
