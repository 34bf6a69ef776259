package games

import (
	"time"

	"github.com/akeren/sunday-signup/config/router"
	apperrors "github.com/akeren/sunday-signup/pkg/errors"
	"github.com/akeren/sunday-signup/pkg/ratelimit"
)

const gamesRequestsPerMinute = 60

func NewGamesController(service GameService, limiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewVersionedRESTController(
		"GamesController",
		"v1",
		"/games",
		func(rs *router.RouterService, c *router.RESTController) {
			if limiter == nil {
				limiter = ratelimit.NewInMemoryRateLimiter(gamesRequestsPerMinute, time.Minute)
			}
			rs.AddGetHandler(c, limiter, "/upcoming", upcomingGamesHandler(service))
		},
	)
}

func upcomingGamesHandler(service GameService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		games, err := service.Upcoming(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(games, "Upcoming games retrieved successfully")
	}
}
