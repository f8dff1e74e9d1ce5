package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodePrecondition = "PRECONDITION_FAILED"
	CodeNotFound     = "NOT_FOUND"
	CodeBadRequest   = "BAD_REQUEST"
	CodeIntegration  = "INTEGRATION_ERROR"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message"`
	Details string         `json:"details,omitempty"`
	Fields  FieldErrors    `json:"fields,omitempty"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// AppError is an error that knows how it should be reported to a client.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Fields     FieldErrors
	Extra      map[string]any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s %s", e.Code, e.Message, e.Fields.Error())
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithExtra attaches additional response data, e.g. a redirect target.
func (e *AppError) WithExtra(key string, value any) *AppError {
	if e.Extra == nil {
		e.Extra = map[string]any{}
	}
	e.Extra[key] = value
	return e
}

// Validation reports per-field input problems. No state was changed.
func Validation(fields FieldErrors) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    "There was an error. Please correct the highlighted fields.",
		HTTPStatus: http.StatusUnprocessableEntity,
		Fields:     fields,
	}
}

// Precondition reports a blocking step the caller must complete first.
func Precondition(message string) *AppError {
	return &AppError{
		Code:       CodePrecondition,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NotFound reports a missing resource with a 404.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// BadRequest is used where an unknown identifier is a malformed request
// rather than a missing page (unknown slug, unknown checkout session).
func BadRequest(message string) *AppError {
	return &AppError{
		Code:       CodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Integration reports a rejected inbound call from an external system.
func Integration(message string, err error) *AppError {
	return &AppError{
		Code:       CodeIntegration,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// Upstream reports a failed outbound call to a provider we depend on.
func Upstream(message string, err error) *AppError {
	return &AppError{
		Code:       CodeUpstream,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// AsAppError unwraps err into an AppError, treating anything unknown as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HandleErrors is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Code:    CodeInternal,
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError renders any service error. Client errors are logged at warn,
// server errors at error level with the underlying cause.
func RespondError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	logger := GetLogger().With(
		zap.String("path", c.FullPath()),
		zap.String("code", appErr.Code),
	)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(appErr.Message, zap.Error(appErr.Err))
	} else {
		logger.Warn(appErr.Message, zap.Any("fields", appErr.Fields), zap.Error(appErr.Err))
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Fields:  appErr.Fields,
		Extra:   appErr.Extra,
	})
}
