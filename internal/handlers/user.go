package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/playvault/playvault/internal/middleware"
)

// UserHandler handles identity routes.
type UserHandler struct{}

// Profile handles GET /api/user/profile
// @Summary Authenticated user's identity
// @Tags User
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /user/profile [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome, user %s", middleware.UserID(c)),
		"id":      middleware.UserID(c),
		"role":    middleware.Role(c),
	})
}

// Admin handles GET /api/user/admin
// @Summary Admin-only identity check
// @Tags User
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/admin [get]
func (h *UserHandler) Admin(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome, admin %s", middleware.UserID(c)),
	})
}
