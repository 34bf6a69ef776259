package router

import (
	"net/http"
	"strconv"

	"github.com/akeren/sunday-signup/internal/log"
	apperrors "github.com/akeren/sunday-signup/pkg/errors"
)

// GetLogger returns the request-scoped logger injected by the router.
func GetLogger(ctx *RequestContext) *log.Logger {
	if logger, ok := ctx.Request.Context().Value(log.LoggerKeyForContext).(*log.Logger); ok && logger != nil {
		return logger
	}
	return log.NewLoggerWithJSONOutput().WithCorrelationID(ctx.Request.Context())
}

func OKResult(data any, message string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusOK, Data: data, Message: message}
}

func CreatedResult(data any, resourceName string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusCreated, Data: data, Message: resourceName + " created successfully"}
}

func TooManyRequestsResult(data RateLimitResponse) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusTooManyRequests, Data: data, Message: "Too many requests, please slow down"}
}

func BadRequestResult(message string, payload any) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusBadRequest, Data: payload, Message: message}
}

func NotFoundResult(message string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusNotFound, Message: message}
}

func InternalServerErrorResult(message string) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusInternalServerError, Message: message}
}

func ErrorResult(statusCode int, message string, data any) *ServiceResult {
	return &ServiceResult{StatusCode: statusCode, Data: data, Message: message}
}

// AppErrorResult maps a service error to its status and public message. Field
// validation errors carry the offending field in data.
func AppErrorResult(err error) *ServiceResult {
	return ErrorResult(
		apperrors.HTTPStatusCode(err),
		apperrors.GetHumanReadableMessage(err),
		apperrors.ValidationDetails(err),
	)
}

// BindingErrorResult turns a ShouldBind* failure on model into a 400.
func BindingErrorResult(ctx *RequestContext, err error, model any, message string) *ServiceResult {
	GetLogger(ctx).Info("Rejected request payload", "route", ctx.FullPath(), "error", err)

	if details := apperrors.FormatValidationErrors(err, model); len(details) > 0 {
		return BadRequestResult(message, details)
	}
	return BadRequestResult(message, nil)
}

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(ctx *RequestContext, paramName string) (uint, *ServiceResult) {
	raw := ctx.Param(paramName)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		GetLogger(ctx).Info("Invalid ID parameter", "param", paramName, "value", raw)
		return 0, BadRequestResult("Invalid ID parameter", nil)
	}

	return uint(id), nil
}
