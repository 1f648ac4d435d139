package models

import "time"

// Coupon is a named discount code. Validation never consumes a coupon,
// there is no redemption tracking.
type Coupon struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Code           string     `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Discount       int        `gorm:"not null" json:"discount"`
	IsActive       bool       `gorm:"not null;default:true" json:"isActive"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`
}

// TableName overrides the table name for Coupon
func (Coupon) TableName() string {
	return "coupons"
}
