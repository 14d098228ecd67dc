package utils

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// APIError is an error carrying the HTTP status it should render with.
// Handlers and services return these; the fiber ErrorHandler turns them
// into the error envelope.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string { return e.Message }

func NewAPIError(status int, msg string) *APIError {
	return &APIError{StatusCode: status, Message: msg}
}

func BadRequest(msg string) *APIError   { return NewAPIError(fiber.StatusBadRequest, msg) }
func Unauthorized(msg string) *APIError { return NewAPIError(fiber.StatusUnauthorized, msg) }
func Forbidden(msg string) *APIError    { return NewAPIError(fiber.StatusForbidden, msg) }
func NotFound(msg string) *APIError     { return NewAPIError(fiber.StatusNotFound, msg) }
func Conflict(msg string) *APIError     { return NewAPIError(fiber.StatusConflict, msg) }
func Upstream(msg string) *APIError     { return NewAPIError(fiber.StatusInternalServerError, msg) }
func Timeout(msg string) *APIError      { return NewAPIError(fiber.StatusGatewayTimeout, msg) }
func Internal(msg string) *APIError     { return NewAPIError(fiber.StatusInternalServerError, msg) }

// ErrorHandler renders every error as the uniform error envelope:
// {statusCode, message, success:false, errors:[]}. Internal causes are
// logged, never sent to the client.
func ErrorHandler(logger *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		msg := "internal server error"

		var apiErr *APIError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &apiErr):
			status = apiErr.StatusCode
			msg = apiErr.Message
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			msg = fiberErr.Message
		case errors.Is(err, context.DeadlineExceeded):
			status = fiber.StatusGatewayTimeout
			msg = "request timed out"
		}

		if status >= fiber.StatusInternalServerError {
			logger.Errorw("request failed",
				"method", c.Method(),
				"path", c.OriginalURL(),
				"status", status,
				"error", err,
			)
		}

		return c.Status(status).JSON(fiber.Map{
			"statusCode": status,
			"message":    msg,
			"success":    false,
			"errors":     []string{},
		})
	}
}
