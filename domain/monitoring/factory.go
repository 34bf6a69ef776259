package monitoring

import (
	"time"

	"github.com/akeren/sunday-signup/config/router"
	"github.com/akeren/sunday-signup/pkg/factory"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	container    *factory.FactoryContainer
	sheets       SheetsProbe
	emailEnabled bool
}

func NewMonitoringControllerFactory(container *factory.FactoryContainer, sheets SheetsProbe, emailEnabled bool) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		container:    container,
		sheets:       sheets,
		emailEnabled: emailEnabled,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	var cache Cache
	if f.container.Cache != nil {
		cache = f.container.Cache
	}
	limiter := f.container.RateLimiterFactory.CreateRateLimiter(monitoringRequestsPerMinute, time.Minute)
	return NewMonitoringController(f.container.DB, f.container.Logger, cache, f.sheets, f.emailEnabled, limiter)
}
