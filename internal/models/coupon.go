package models

import "time"

// Coupon discount types.
const (
	DiscountTypeFlat       = "flat"
	DiscountTypePercentage = "percentage"
)

// Coupon lives in the promotions schema. Codes are normalized to uppercase
// before insert and are unique.
type Coupon struct {
	ID            int        `db:"id" json:"id"`
	Code          string     `db:"code" json:"code"`
	DiscountType  string     `db:"discount_type" json:"discount_type"`
	DiscountValue float64    `db:"discount_value" json:"discount_value"`
	MinOrder      float64    `db:"min_order" json:"min_order"`
	MaxDiscount   *float64   `db:"max_discount" json:"max_discount"`
	ExpiresAt     *time.Time `db:"expires_at" json:"expires_at"`
	UsageLimit    int        `db:"usage_limit" json:"usage_limit"`
	UsedCount     int        `db:"used_count" json:"used_count"`
	Active        bool       `db:"active" json:"active"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
