package services

import (
	"errors"
	"time"

	"github.com/playvault/playvault/internal/models"
	"gorm.io/gorm"
)

// ValidateCoupon looks up an active coupon by code and returns its
// discount percentage. Missing or inactive codes return
// ErrCouponNotFound; codes past their expiration date return
// ErrCouponExpired. Validation never consumes the coupon.
func ValidateCoupon(db *gorm.DB, code string) (int, error) {
	var coupon models.Coupon
	err := db.Where("code = ? AND is_active = ?", code, true).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCouponNotFound
		}
		return 0, err
	}

	if coupon.ExpirationDate != nil && time.Now().After(*coupon.ExpirationDate) {
		return 0, ErrCouponExpired
	}

	return coupon.Discount, nil
}

// CreateCoupon inserts a new coupon. Duplicate codes are rejected.
func CreateCoupon(db *gorm.DB, coupon *models.Coupon) error {
	if err := db.Create(coupon).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}
