package models

import "time"

// ReferralCode belongs to a referring customer. Codes are uppercase.
type ReferralCode struct {
	ID           int       `db:"id" json:"id"`
	UserID       int       `db:"user_id" json:"user_id"`
	Code         string    `db:"code" json:"code"`
	RewardAmount float64   `db:"reward_amount" json:"reward_amount"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	// Joined referring customer name, listing only.
	UserName *string `db:"user_name" json:"user_name,omitempty"`
}

// ReferralUsage links a referrer and a referred customer. RewardApplied is
// set once and never unset.
type ReferralUsage struct {
	ID             int       `db:"id" json:"id"`
	ReferrerUserID int       `db:"referrer_user_id" json:"referrer_user_id"`
	ReferredUserID int       `db:"referred_user_id" json:"referred_user_id"`
	OrderID        *int      `db:"order_id" json:"order_id"`
	RewardApplied  bool      `db:"reward_applied" json:"reward_applied"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`

	// Joined customer names, listing only.
	ReferrerName *string `db:"referrer_name" json:"referrer_name,omitempty"`
	ReferredName *string `db:"referred_name" json:"referred_name,omitempty"`
}
