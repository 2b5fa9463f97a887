package handlers

import (
	"bookloan/internal/adapters/http/middleware"
	"bookloan/internal/core/services"
	"bookloan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetUser handles getting a user by ID
// @Summary Get user by ID
// @Description Readable by the user themself or by a holder of canEditUsers
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response{data=models.UserResponse}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.Context(), middleware.Identity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, "get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// UpdateUser handles a partial user update
// @Summary Update user
// @Description Update name, email, password or capability flags. Only present fields are applied.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateUserInput true "Fields to update"
// @Success 200 {object} response.Response{data=models.UserResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateUser(c.Context(), middleware.Identity(c), c.Params("id"), &input)
	if err != nil {
		return writeError(c, err, "update user")
	}

	return response.Success(c, "User updated successfully", user)
}

// DeleteUser handles soft-deleting a user
// @Summary Disable user
// @Description Mark the account inactive. Allowed for the user themself or a holder of canDisableUsers.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response{data=models.UserResponse}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	user, err := h.userService.DeleteUser(c.Context(), middleware.Identity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, "delete user")
	}

	return response.Success(c, "User deleted successfully", user)
}
