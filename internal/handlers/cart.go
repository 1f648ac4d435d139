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

// CartHandler handles shopping cart routes.
type CartHandler struct {
	DB *gorm.DB
}

// Add handles POST /api/cart
// @Summary Add a game to the cart
// @Description An existing row for the same game has its quantity incremented.
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body object true "gameId (internal id)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /cart [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var body struct {
		GameID types.FlexUint64 `json:"gameId"`
	}
	if err := c.BodyParser(&body); err != nil || body.GameID.Uint64() == 0 {
		return utils.ErrorResponse(c, "gameId is required", fiber.StatusBadRequest, "cart.validation.input")
	}

	item, err := services.AddCartItem(h.DB, middleware.UserID(c), uint(body.GameID.Uint64()))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "game not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "item added to cart",
		"cartItem": item,
	})
}

// List handles GET /api/cart
// @Summary List cart items
// @Tags Cart
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /cart [get]
func (h *CartHandler) List(c *fiber.Ctx) error {
	items, err := services.GetCartItems(h.DB, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"cartItems": items})
}

// UpdateQuantity handles PUT /api/cart/:itemId
// @Summary Change a cart row's quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param itemId path int true "Cart row id"
// @Param body body object true "quantity (>= 1)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /cart/{itemId} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return utils.ErrorResponse(c, "item id must be a valid number", fiber.StatusBadRequest, "cart.validation.itemId")
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "cart.validation.input")
	}

	item, err := services.UpdateCartItemQuantity(h.DB, middleware.UserID(c), itemID, body.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			return utils.ErrorResponse(c, "invalid quantity", fiber.StatusBadRequest, "cart.validation.quantity")
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "cart item not found")
		default:
			return err
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "quantity updated",
		"cartItem": item,
	})
}

// Remove handles DELETE /api/cart/:itemId
// @Summary Remove a cart row
// @Tags Cart
// @Produce json
// @Param itemId path int true "Cart row id"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /cart/{itemId} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return utils.ErrorResponse(c, "item id must be a valid number", fiber.StatusBadRequest, "cart.validation.itemId")
	}

	if err := services.RemoveCartItem(h.DB, middleware.UserID(c), itemID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "cart item not found")
		}
		return err
	}
	return utils.MessageResponse(c, fiber.StatusOK, "item removed from cart")
}

// Checkout handles POST /api/cart/checkout
// @Summary Check out the cart
// @Description Moves every distinct game into the library and empties the cart, atomically.
// @Tags Cart
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	library, err := services.Checkout(h.DB, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return utils.ErrorResponse(c, "cart is empty", fiber.StatusBadRequest, "cart.checkout.empty")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "checkout completed",
		"library": library,
	})
}
