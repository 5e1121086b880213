package serverutils

import (
	"errors"

	"quicknotes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// AppError is the error type services return; the error handler middleware
// maps it to an HTTP status and a {error, details} JSON body.
type AppError struct {
	Status  int
	Message string
	Details []string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(details ...string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: "Validation failed", Details: details}
}

func NewBadRequest(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

// Ownership mismatches are reported as not-found so a caller cannot probe
// whether a resource exists under another account.
func NewNotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Message: message}
}

// ErrorHandlerMiddleware converts errors bubbling out of handlers into JSON
// responses. Unexpected errors are logged and answered with a generic 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			body := fiber.Map{"error": appErr.Message}
			if len(appErr.Details) > 0 {
				body["details"] = appErr.Details
			}
			return ctx.Status(appErr.Status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		log.Error("http", "Unhandled error", map[string]interface{}{
			"error":  err.Error(),
			"path":   ctx.Path(),
			"method": ctx.Method(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
