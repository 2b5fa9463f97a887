package response

import (
	"strconv"

	"bookloan/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Response is the envelope every endpoint answers with. Failures carry a
// client-facing message and never any internal detail.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func write(c *fiber.Ctx, status int, success bool, message string, data interface{}) error {
	return c.Status(status).JSON(Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// Success sends a 200 response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return write(c, fiber.StatusOK, true, message, data)
}

// Created sends a 201 response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return write(c, fiber.StatusCreated, true, message, data)
}

// Page sends one page of a listing along with its pagination meta
func Page(c *fiber.Ctx, message string, page *pagination.Response) error {
	if page.Meta != nil {
		c.Set("X-Total-Count", strconv.FormatInt(page.Meta.Total, 10))
	}
	return write(c, fiber.StatusOK, true, message, page)
}

// Error sends a failure response with the given status
func Error(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = utils.StatusMessage(status)
	}
	return write(c, status, false, message, nil)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500. message must not include the cause.
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
