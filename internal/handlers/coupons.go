package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/playvault/playvault/internal/models"
	"github.com/playvault/playvault/internal/services"
	"github.com/playvault/playvault/internal/utils"
	"gorm.io/gorm"
)

// CouponHandler handles coupon routes.
type CouponHandler struct {
	DB *gorm.DB
}

// Validate handles POST /api/cupons/validate
// @Summary Validate a coupon code
// @Description Returns the discount percentage for an active, unexpired code.
// @Tags Coupons
// @Accept json
// @Produce json
// @Param body body object true "code"
// @Success 200 {object} map[string]int
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /cupons/validate [post]
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&body); err != nil || body.Code == "" {
		return utils.ErrorResponse(c, "code is required", fiber.StatusBadRequest, "coupons.validation.input")
	}

	discount, err := services.ValidateCoupon(h.DB, body.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCouponNotFound):
			return utils.NotFoundResponse(c, "coupon invalid or expired")
		case errors.Is(err, services.ErrCouponExpired):
			return utils.ErrorResponse(c, "coupon expired", fiber.StatusBadRequest, "coupons.expired")
		default:
			return err
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"discount": discount})
}

// Create handles POST /api/cupons (admin)
// @Summary Create a coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Param body body object true "code, discount, isActive, expirationDate"
// @Success 201 {object} models.Coupon
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /cupons [post]
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var body struct {
		Code           string     `json:"code"`
		Discount       int        `json:"discount"`
		IsActive       *bool      `json:"isActive"`
		ExpirationDate *time.Time `json:"expirationDate"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "invalid input", fiber.StatusBadRequest, "coupons.validation.input")
	}
	if body.Code == "" || body.Discount < 1 || body.Discount > 100 {
		return utils.ErrorResponse(c, "code and a discount between 1 and 100 are required", fiber.StatusBadRequest, "coupons.validation.input")
	}

	coupon := &models.Coupon{
		Code:           body.Code,
		Discount:       body.Discount,
		IsActive:       true,
		ExpirationDate: body.ExpirationDate,
	}
	if body.IsActive != nil {
		coupon.IsActive = *body.IsActive
	}

	if err := services.CreateCoupon(h.DB, coupon); err != nil {
		if errors.Is(err, services.ErrDuplicateCode) {
			return utils.ErrorResponse(c, "coupon code already exists", fiber.StatusBadRequest, "coupons.create.duplicate")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}
