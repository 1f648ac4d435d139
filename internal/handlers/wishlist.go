package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/playvault/playvault/internal/middleware"
	"github.com/playvault/playvault/internal/services"
	"github.com/playvault/playvault/internal/utils"
	"gorm.io/gorm"
)

// WishlistHandler handles saved-for-later routes.
type WishlistHandler struct {
	DB *gorm.DB
}

// Get handles GET /api/wishlist
// @Summary Get the user's wishlist
// @Tags Wishlist
// @Produce json
// @Success 200 {array} models.Game
// @Security BearerAuth
// @Router /wishlist [get]
func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	games, err := services.GetWishlist(h.DB, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "user not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(games)
}

// Add handles POST /api/wishlist/:gameId
// @Summary Add a game to the wishlist
// @Tags Wishlist
// @Produce json
// @Param gameId path int true "Internal game id"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /wishlist/{gameId} [post]
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	gameID, ok := parseIDParam(c, "gameId")
	if !ok {
		return utils.ErrorResponse(c, "game id must be a valid number", fiber.StatusBadRequest, "wishlist.validation.gameId")
	}

	if err := services.AddToWishlist(h.DB, middleware.UserID(c), gameID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "user or game not found")
		case errors.Is(err, services.ErrAlreadyInWishlist):
			return utils.ErrorResponse(c, "game already in wishlist", fiber.StatusBadRequest, "wishlist.duplicate")
		default:
			return err
		}
	}
	return utils.MessageResponse(c, fiber.StatusOK, "game added to wishlist")
}

// Remove handles DELETE /api/wishlist/:gameId
// @Summary Remove a game from the wishlist
// @Description Removing a game that is not on the list is rejected.
// @Tags Wishlist
// @Produce json
// @Param gameId path int true "Internal game id"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /wishlist/{gameId} [delete]
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	gameID, ok := parseIDParam(c, "gameId")
	if !ok {
		return utils.ErrorResponse(c, "game id must be a valid number", fiber.StatusBadRequest, "wishlist.validation.gameId")
	}

	if err := services.RemoveFromWishlist(h.DB, middleware.UserID(c), gameID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "user not found")
		case errors.Is(err, services.ErrNotInWishlist):
			return utils.ErrorResponse(c, "game not in wishlist", fiber.StatusBadRequest, "wishlist.missing")
		default:
			return err
		}
	}
	return utils.MessageResponse(c, fiber.StatusOK, "game removed from wishlist")
}
