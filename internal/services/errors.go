package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Domain errors returned by the service layer. Handlers map these onto
// HTTP statuses and user-facing messages.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")

	ErrAlreadyCommented = errors.New("already commented on this game")
	ErrNotOwner         = errors.New("not the owner")

	ErrCouponNotFound = errors.New("coupon invalid or expired")
	ErrCouponExpired  = errors.New("coupon expired")
	ErrDuplicateCode  = errors.New("coupon code already exists")

	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrEmptyCart       = errors.New("cart is empty")

	ErrAlreadyInLibrary  = errors.New("game already in library")
	ErrAlreadyInWishlist = errors.New("game already in wishlist")
	ErrNotInWishlist     = errors.New("game not in wishlist")

	ErrDuplicateApp = errors.New("appid already exists")
)

// isDuplicateKey reports whether err is a unique-constraint violation.
// GORM only translates these with TranslateError enabled, so the driver
// message is inspected as a fallback across dialects.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value") // postgres
}
