package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is catalog data; the store never mutates it. MaxDiscount only
// applies to percentage coupons and is ignored when zero.
type Coupon struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	MinOrderValue decimal.Decimal `json:"minOrderValue"`
	MaxDiscount   decimal.Decimal `json:"maxDiscount,omitempty"`
	ExpiresAt     time.Time       `json:"expiresAt"`
	IsActive      bool            `json:"isActive"`
}
