package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/playvault/playvault/internal/auth"
	"github.com/playvault/playvault/internal/logger"
	"github.com/playvault/playvault/internal/services"
	"github.com/playvault/playvault/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	DB     *gorm.DB
	Tokens *auth.Manager
	Log    *logger.Logger
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Create a user account. No token is issued at registration.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "name, email, password, optional role"
// @Success 201 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Name == "" || body.Email == "" || body.Password == "" {
		return utils.ErrorResponse(c, "name, email and password are required", fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := services.RegisterUser(h.DB, services.RegisterInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return utils.ErrorResponse(c, "email already in use", fiber.StatusBadRequest, "auth.register.duplicate")
		case errors.Is(err, services.ErrInvalidRole):
			return utils.ErrorResponse(c, "invalid role", fiber.StatusBadRequest, "auth.validation.input")
		default:
			return err
		}
	}

	h.Log.Info("user registered", zap.String("userID", user.ID), zap.String("role", user.Role))

	return utils.MessageResponse(c, fiber.StatusCreated, "user registered successfully")
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verify credentials and issue a signed token embedding {id, role}.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "email, password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))

	user, err := services.AuthenticateUser(h.DB, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			return utils.ErrorResponse(c, "invalid credentials", fiber.StatusBadRequest, "auth.login")
		}
		return err
	}

	token, err := h.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": token})
}
