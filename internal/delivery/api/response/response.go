// Package response renders the JSON envelopes returned by the HTTP API.
package response

import (
	"net/http"

	deliverycontext "scribe/internal/delivery/context"
	domainerrors "scribe/internal/domain/errors"
	"scribe/internal/errors"

	"github.com/labstack/echo/v4"
)

// Body is the envelope shared by every response. Data is always an array, empty when there is nothing to return.
type Body struct {
	Message string     `json:"message"`
	Token   string     `json:"token,omitempty"`
	Data    []any      `json:"data"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *MetaInfo  `json:"meta,omitempty"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, message string, data []any) error {
	return c.JSON(statusCode, Body{
		Message: message,
		Data:    nonNil(data),
	})
}

// WithToken returns a successful response carrying a bearer token.
func WithToken(c echo.Context, statusCode int, message, token string, data []any) error {
	return c.JSON(statusCode, Body{
		Message: message,
		Token:   token,
		Data:    nonNil(data),
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, Body{
		Message: message,
		Data:    []any{},
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// BindingError returns a binding error response
func BindingError(c echo.Context) error {
	return AppError(c, domainerrors.ErrValidationFailed)
}

// Unauthorized returns the single 401 every gate failure collapses into.
func Unauthorized(c echo.Context) error {
	return AppError(c, domainerrors.ErrUnauthenticated)
}

// AppError renders an application error with its own status, code and message.
func AppError(c echo.Context, appErr domainerrors.AppError) error {
	var details any
	if d := appErr.Details(); d != "" {
		details = d
	}

	return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)
}

// HandleAppError handles application errors, converting domain errors to appropriate HTTP responses.
// Errors that are not AppErrors are returned for the central error handler.
func HandleAppError(c echo.Context, err error) error {
	if domainerrors.IsTokenError(err) {
		return Unauthorized(c)
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			return errors.WithStack(err)
		}

		return AppError(c, appErr)
	}

	return errors.WithStack(err)
}

func nonNil(data []any) []any {
	if data == nil {
		return []any{}
	}

	return data
}
