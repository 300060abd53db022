package models

import "time"

// Customer represents a customer row. total_orders and total_spent are
// denormalized aggregates maintained by the order intake workflow; the
// listing and detail paths recount orders live (see CustomerRepository).
type Customer struct {
	ID          int        `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Email       *string    `db:"email" json:"email"`
	Phone       *string    `db:"phone" json:"phone"`
	Address     *string    `db:"address" json:"address"`
	Status      string     `db:"status" json:"status"`
	Notes       *string    `db:"notes" json:"notes"`
	TotalOrders int        `db:"total_orders" json:"total_orders"`
	TotalSpent  float64    `db:"total_spent" json:"total_spent"`
	LastOrderAt *time.Time `db:"last_order_at" json:"last_order_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	// Recent orders, populated by the detail view only.
	Orders []Order `db:"-" json:"orders,omitempty"`
}

// CustomerSummary is the paginated listing shape. TotalOrders here is a live
// count aggregated from the orders table, not the denormalized column.
type CustomerSummary struct {
	ID          int        `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Email       *string    `db:"email" json:"email"`
	Phone       *string    `db:"phone" json:"phone"`
	Address     *string    `db:"address" json:"address"`
	Status      string     `db:"status" json:"status"`
	LastOrderAt *time.Time `db:"last_order_at" json:"last_order_at"`
	TotalOrders int        `db:"total_orders" json:"total_orders"`
	TotalSpent  float64    `db:"total_spent" json:"total_spent"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
