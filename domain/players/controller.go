package players

import (
	"time"

	"github.com/akeren/sunday-signup/config/router"
	"github.com/akeren/sunday-signup/pkg/ratelimit"
)

// Lookups fire while the phone field is typed, so the budget is generous.
const lookupRequestsPerMinute = 30

func NewPlayersController(service PlayerService, limiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewVersionedRESTController(
		"PlayersController",
		"v1",
		"/players",
		func(rs *router.RouterService, c *router.RESTController) {
			if limiter == nil {
				limiter = ratelimit.NewInMemoryRateLimiter(lookupRequestsPerMinute, time.Minute)
			}
			rs.AddGetHandler(c, limiter, "/lookup", lookupPlayerHandler(service))
		},
	)
}

func lookupPlayerHandler(service PlayerService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var query LookupQuery
		if err := ctx.ShouldBindQuery(&query); err != nil {
			return router.BindingErrorResult(ctx, err, &query, "Invalid query parameters")
		}

		result, err := service.LookupByPhone(ctx.Request.Context(), query.Phone)
		if err != nil {
			return router.AppErrorResult(err)
		}

		message := "No returning player found"
		if result.Found {
			message = "Returning player found"
		}
		return router.OKResult(result, message)
	}
}
