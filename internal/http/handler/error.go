package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cookbook/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

var statusCodes = map[int]string{
	fiber.StatusBadRequest:            "BAD_REQUEST",
	fiber.StatusNotFound:              "NOT_FOUND",
	fiber.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	fiber.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	fiber.StatusTooManyRequests:       "TOO_MANY_REQUESTS",
	fiber.StatusServiceUnavailable:    "SERVICE_UNAVAILABLE",
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Messages of *fiber.Error values are returned as-is; any other error is
// reported as a generic internal error.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		code, ok := statusCodes[fe.Code]
		if !ok {
			code = "INTERNAL_ERROR"
			if fe.Code < fiber.StatusInternalServerError {
				code = "REQUEST_ERROR"
			}
		}
		return writeError(c, fe.Code, code, fe.Message)
	}
}
