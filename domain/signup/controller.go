package signup

import (
	"strconv"
	"time"

	"github.com/akeren/sunday-signup/config/router"
)

func NewSignupController(factory SignupServiceFactory, submissionsPerMinute int) *router.RESTController {
	return router.NewVersionedRESTController(
		"SignupController",
		"v1",
		"/signup",
		func(rs *router.RouterService, c *router.RESTController) {
			service := factory.CreateService(NewMetrics(rs.MetricsRegisterer()))
			submissionLimiter := factory.CreateRateLimiter(submissionsPerMinute, time.Minute)

			rs.AddPostHandler(c, submissionLimiter, "", submitSignupHandler(service))
			rs.AddPostHandler(c, nil, "/validate/:step", validateStepHandler(service))
			rs.AddPostHandler(c, nil, "/quote", quoteHandler(service))
			rs.AddGetHandler(c, nil, "/payment-methods", paymentMethodsHandler(service))
			rs.AddGetHandler(c, nil, "", listSignupsHandler(service))
			rs.AddGetHandler(c, nil, "/:id", getSignupHandler(service))
			rs.AddPostHandler(c, submissionLimiter, "/:id/resubmit", resubmitSignupHandler(service))
		},
	)
}

func bindSignupRequest(ctx *router.RequestContext, req *SignupRequest) *router.ServiceResult {
	if err := ctx.ShouldBindJSON(req); err != nil {
		return router.BindingErrorResult(ctx, err, req, "Invalid request payload")
	}
	return nil
}

func submitSignupHandler(service SignupService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req SignupRequest
		if errResult := bindSignupRequest(ctx, &req); errResult != nil {
			return errResult
		}

		confirmation, err := service.Submit(ctx.Request.Context(), &req)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.CreatedResult(confirmation, "Signup")
	}
}

func validateStepHandler(service SignupService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		step, err := strconv.Atoi(ctx.Param("step"))
		if err != nil {
			return router.BadRequestResult("Invalid step parameter", nil)
		}

		var req SignupRequest
		if errResult := bindSignupRequest(ctx, &req); errResult != nil {
			return errResult
		}

		if err := service.ValidateStep(ctx.Request.Context(), step, &req); err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult(StepValidationResponse{Step: step, Valid: true}, "Step is valid")
	}
}

func quoteHandler(service SignupService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req QuoteRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return router.BindingErrorResult(ctx, err, &req, "Invalid request payload")
		}

		quote, err := service.Quote(ctx.Request.Context(), &req)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult(quote, "Quote calculated successfully")
	}
}

func paymentMethodsHandler(service SignupService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		return router.OKResult(service.PaymentMethods(), "Payment methods retrieved successfully")
	}
}

func listSignupsHandler(service SignupService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var query ListSignupsQuery
		if err := ctx.ShouldBindQuery(&query); err != nil {
			return router.BindingErrorResult(ctx, err, &query, "Invalid query parameters")
		}

		signups, err := service.List(ctx.Request.Context(), query.Status)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult(signups, "Signups retrieved successfully")
	}
}

func getSignupHandler(service SignupService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		signup, err := service.FindByID(ctx.Request.Context(), id)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult(signup, "Signup retrieved successfully")
	}
}

func resubmitSignupHandler(service SignupService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		confirmation, err := service.Resubmit(ctx.Request.Context(), id)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.OKResult(confirmation, "Signup resubmitted successfully")
	}
}
