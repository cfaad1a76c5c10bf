package response

import (
	applog "eduhub-records/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// Response represents a standard API response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// send writes the envelope, stamped with the request ID of the call
func send(c *fiber.Ctx, status int, body Response) error {
	body.RequestID = applog.RequestIDFromCtx(c.UserContext())
	return c.Status(status).JSON(body)
}

// Success sends a 200 response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return send(c, statusCode, Response{Error: message})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// UnprocessableEntity sends a 422 response, data explains the rejection (e.g. the failed steps)
func UnprocessableEntity(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusUnprocessableEntity, Response{Error: message, Data: data})
}

// InternalServerError sends a 500 response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
