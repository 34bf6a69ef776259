package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akeren/sunday-signup/pkg/ratelimit"
)

// joinPath builds the absolute route for a handler mounted under controller.
func joinPath(controller *RESTController, relativePath string) string {
	path := "/" + strings.Trim(controller.mountPoint, "/")
	if rel := strings.Trim(relativePath, "/"); rel != "" {
		path = strings.TrimSuffix(path, "/") + "/" + rel
	}
	return path
}

func (routerService *RouterService) keyForPathAndMethod(path, method string) string {
	return method + " " + path
}

func (routerService *RouterService) registerRoute(controller *RESTController, key string) {
	if other, taken := routerService.handlerToControllerMap[key]; taken {
		panic(fmt.Sprintf("route %q is already served by controller %q", key, other.name))
	}
	routerService.handlerToControllerMap[key] = controller
}

func (routerService *RouterService) bindOverrideRateLimiter(key string, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		return
	}
	if _, taken := routerService.rateLimitOverrides[key]; taken {
		panic(fmt.Sprintf("a rate limiter is already bound to %q", key))
	}
	routerService.rateLimitOverrides[key] = limiter
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)
		if result == nil {
			GetLogger(c).Error("Handler returned no result", "route", c.FullPath())
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("An unexpected error occurred").ToJSON())
			return
		}

		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: "/" + strings.Trim(mountPoint, "/"),
		prepare:    prepare,
	}
}

// NewVersionedRESTController mounts the controller under /<version>/<mountPoint>.
func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: "/" + strings.Trim(version, "/") + "/" + strings.Trim(mountPoint, "/"),
		version:    version,
		prepare:    prepare,
	}
}

// RateLimitWith applies limiter to every handler of the controller that has
// no limiter of its own.
func (controller *RESTController) RateLimitWith(routerService *RouterService, limiter ratelimit.RateLimiter) *RESTController {
	routerService.bindOverrideRateLimiter(controller.mountPoint, limiter)
	return controller
}

func (routerService *RouterService) addHandler(
	method string,
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares []MiddlewareFunc,
) {
	route := joinPath(controller, path)
	key := routerService.keyForPathAndMethod(route, method)

	routerService.registerRoute(controller, key)
	routerService.bindOverrideRateLimiter(key, limiter)
	routerService.engine.Handle(method, route, append(middlewares, createHandler(handler))...)

	controller.handlerCount++
	routerService.logger.Debug("Handler registered", "method", method, "path", route, "own_limiter", limiter != nil)
}

// AddGetHandler registers a GET route. A nil limiter falls back to the
// controller's limiter, then the router default.
func (routerService *RouterService) AddGetHandler(controller *RESTController, limiter ratelimit.RateLimiter, path string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(http.MethodGet, controller, limiter, path, handler, middlewares)
}

func (routerService *RouterService) AddPostHandler(controller *RESTController, limiter ratelimit.RateLimiter, path string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(http.MethodPost, controller, limiter, path, handler, middlewares)
}
