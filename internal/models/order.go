package models

import "time"

// Known order statuses. The store column is free-form text for backward
// compatibility, but the API boundary only accepts this set.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Default payment state for new orders.
const PaymentStatusUnpaid = "Unpaid"

// IsValidOrderStatus reports whether s is one of the accepted statuses.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an order header. Customer contact fields are denormalized onto the
// header; CustomerID is an optional reference that survives guest checkout.
type Order struct {
	ID              int       `db:"id" json:"id"`
	CustomerID      *int      `db:"customer_id" json:"customer_id"`
	CustomerName    string    `db:"customer_name" json:"customer_name"`
	CustomerPhone   string    `db:"customer_phone" json:"customer_phone"`
	CustomerEmail   *string   `db:"customer_email" json:"customer_email"`
	ShippingAddress string    `db:"shipping_address" json:"shipping_address"`
	TotalAmount     float64   `db:"total_amount" json:"total_amount"`
	Status          string    `db:"status" json:"status"`
	PaymentStatus   string    `db:"payment_status" json:"payment_status"`
	PaymentMethod   *string   `db:"payment_method" json:"payment_method"`
	Notes           *string   `db:"notes" json:"notes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`

	// Populated by the detail view only.
	Items         []OrderItem          `db:"-" json:"items,omitempty"`
	StatusHistory []OrderStatusHistory `db:"-" json:"status_history,omitempty"`
}

// OrderItem is a line item. ProductName and SKU are snapshots captured at
// order time; ProductID becomes NULL if the product is later deleted and the
// detail view falls back to the snapshot name.
type OrderItem struct {
	ID          int     `db:"id" json:"id"`
	OrderID     int     `db:"order_id" json:"order_id"`
	ProductID   *int    `db:"product_id" json:"product_id"`
	ProductName string  `db:"product_name" json:"product_name"`
	SKU         string  `db:"sku" json:"sku"`
	Price       float64 `db:"price" json:"price"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Total       float64 `db:"total" json:"total"`

	// Joined from the live product row when it still exists.
	ImageURL *string `db:"image_url" json:"image_url"`
}

// OrderStatusHistory is an append-only audit entry for status transitions.
type OrderStatusHistory struct {
	ID        int       `db:"id" json:"id"`
	OrderID   int       `db:"order_id" json:"order_id"`
	Status    string    `db:"status" json:"status"`
	ChangedBy string    `db:"changed_by" json:"changed_by"`
	ChangedAt time.Time `db:"changed_at" json:"changed_at"`
}

// DashboardSummary holds the admin dashboard aggregate counters.
type DashboardSummary struct {
	TotalOrders      int     `json:"total_orders"`
	PendingOrders    int     `json:"pending_orders"`
	CompletedOrders  int     `json:"completed_orders"`
	TotalSalesAmount float64 `json:"total_sales_amount"`
	TotalProducts    int     `json:"total_products"`
}
