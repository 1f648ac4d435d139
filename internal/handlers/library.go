package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/playvault/playvault/internal/middleware"
	"github.com/playvault/playvault/internal/services"
	"github.com/playvault/playvault/internal/types"
	"github.com/playvault/playvault/internal/utils"
	"gorm.io/gorm"
)

// LibraryHandler handles owned-games routes.
type LibraryHandler struct {
	DB *gorm.DB
}

// Add handles POST /api/library
// @Summary Add a game to the library
// @Tags Library
// @Accept json
// @Produce json
// @Param body body object true "gameId (internal id)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /library [post]
func (h *LibraryHandler) Add(c *fiber.Ctx) error {
	var body struct {
		GameID types.FlexUint64 `json:"gameId"`
	}
	if err := c.BodyParser(&body); err != nil || body.GameID.Uint64() == 0 {
		return utils.ErrorResponse(c, "gameId is required", fiber.StatusBadRequest, "library.validation.input")
	}

	library, err := services.AddToLibrary(h.DB, middleware.UserID(c), uint(body.GameID.Uint64()))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "game not found")
		case errors.Is(err, services.ErrAlreadyInLibrary):
			return utils.ErrorResponse(c, "game already in library", fiber.StatusBadRequest, "library.duplicate")
		default:
			return err
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "game added to library",
		"library": library,
	})
}

// Get handles GET /api/library
// @Summary Get the user's library
// @Description 404 when the user has no library record yet.
// @Tags Library
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /library [get]
func (h *LibraryHandler) Get(c *fiber.Ctx) error {
	library, err := services.GetLibrary(h.DB, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "library not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"library": library})
}

// Remove handles DELETE /api/library/:gameId
// @Summary Remove a game from the library
// @Tags Library
// @Produce json
// @Param gameId path int true "Internal game id"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /library/{gameId} [delete]
func (h *LibraryHandler) Remove(c *fiber.Ctx) error {
	gameID, ok := parseIDParam(c, "gameId")
	if !ok {
		return utils.ErrorResponse(c, "game id must be a valid number", fiber.StatusBadRequest, "library.validation.gameId")
	}

	if err := services.RemoveFromLibrary(h.DB, middleware.UserID(c), gameID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "game not found in library")
		}
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "game removed from library")
}
