package response

import (
	"log"

	"loco-verify/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Detail  string      `json:"detail,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// productionMessages maps status codes to user-facing messages for prod mode
var productionMessages = map[int]string{
	fiber.StatusBadRequest:          "Invalid request. Please check your input.",
	fiber.StatusUnauthorized:        "Authentication required. Please log in.",
	fiber.StatusForbidden:           "You don't have permission to access this resource.",
	fiber.StatusNotFound:            "The requested resource was not found.",
	fiber.StatusInternalServerError: "Something went wrong. Please try again later.",
	fiber.StatusServiceUnavailable:  "Service temporarily unavailable. Please try again later.",
}

// Unexpected sends an error response for unexpected failures.
// In dev mode the underlying error is echoed in the detail field;
// in prod mode the message is replaced with a generic status-keyed string.
func Unexpected(c *fiber.Ctx, statusCode int, context string, err error) error {
	log.Printf("❌ Error in %s: %v", context, err)

	if config.AppConfig != nil && config.AppConfig.IsProd() {
		message, ok := productionMessages[statusCode]
		if !ok {
			message = productionMessages[fiber.StatusInternalServerError]
		}
		return Error(c, statusCode, message)
	}

	return c.Status(statusCode).JSON(Response{
		Success: false,
		Message: err.Error(),
		Detail:  context,
	})
}
