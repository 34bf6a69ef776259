package errors

import (
	"context"
	"errors"
	"net/http"
)

const timeoutMessage = "The request took too long, please try again"

func HTTPStatusCode(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	if errors.Is(err, context.DeadlineExceeded) && GetErrorType(err) == ErrorTypeUnknown {
		return http.StatusGatewayTimeout
	}

	switch GetErrorType(err) {
	case ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeUpstream:
		return http.StatusBadGateway
	case ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetHumanReadableMessage returns the AppError message. Other errors get a
// generic message so driver and transport details never reach callers.
func GetHumanReadableMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutMessage
	}
	return "An unexpected error occurred"
}
