// Package apperrors defines the HTTP error taxonomy and the centralized
// formatter every handler funnels failures into.
package apperrors

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Error is an HTTP-mapped application error. Details carries field-level
// validation information when present.
type Error struct {
	Status  int         `json:"-"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidation reports a 400 with per-field details.
func NewValidation(message string, details interface{}) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: message, Details: details}
}

// NewBadRequest reports a 400 without field details.
func NewBadRequest(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: message}
}

// NewAuthentication reports a 401 (missing, malformed or invalid credential).
func NewAuthentication(message string) *Error {
	return &Error{Status: fiber.StatusUnauthorized, Message: message}
}

// NewAuthorization reports a 403 (wrong role or non-owner).
func NewAuthorization(message string) *Error {
	return &Error{Status: fiber.StatusForbidden, Message: message}
}

// NewNotFound reports a 404.
func NewNotFound(message string) *Error {
	return &Error{Status: fiber.StatusNotFound, Message: message}
}

// NewInternal reports a 500 with a generic message; the underlying cause is
// logged by the handler, never sent to the client.
func NewInternal() *Error {
	return &Error{Status: fiber.StatusInternalServerError, Message: "Internal server error"}
}

// Handler is the Fiber ErrorHandler. Every error becomes {message, details?}
// with the mapped status code; unexpected errors are logged and converted to
// a generic 500 so internals never leak.
func Handler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(appErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}

	log.Printf("[ERROR] unexpected: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
