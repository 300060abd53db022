package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/utils"
)

// ProductCatalog is the slice of the product repository the order flow needs.
type ProductCatalog interface {
	GetByID(ctx context.Context, id int) (*models.Product, error)
}

// OrderStore is the slice of the order repository the order flow needs.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order, items []models.OrderItem) error
	UpdateStatus(ctx context.Context, id int, status, changedBy string) (*models.Order, error)
}

// SummaryInvalidator drops cached dashboard aggregates after order writes.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context) error
}

// OrderService owns the order intake and status transition flows.
type OrderService struct {
	orders  OrderStore
	catalog ProductCatalog
	summary SummaryInvalidator
}

// NewOrderService creates a new OrderService. summary may be nil when no
// cache is wired.
func NewOrderService(orders OrderStore, catalog ProductCatalog, summary SummaryInvalidator) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, summary: summary}
}

// CreateOrderItemInput is one requested line item. Price, name, and SKU are
// never taken from the caller; they are resolved from the catalog.
type CreateOrderItemInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CreateOrderInput is an order submission. CustomerID is an optional known
// customer reference; when set it wins over email resolution. Status and
// PaymentStatus default to Pending/Unpaid when absent.
type CreateOrderInput struct {
	CustomerID      *int                   `json:"customer_id"`
	CustomerName    string                 `json:"customer_name"`
	CustomerPhone   string                 `json:"customer_phone"`
	CustomerEmail   *string                `json:"customer_email"`
	ShippingAddress string                 `json:"shipping_address"`
	Status          string                 `json:"status"`
	PaymentStatus   string                 `json:"payment_status"`
	PaymentMethod   *string                `json:"payment_method"`
	Notes           *string                `json:"notes"`
	Items           []CreateOrderItemInput `json:"items"`
}

// CreateOrder validates a submission, resolves every line item against the
// catalog, computes the totals, and stores the order. All catalog lookups
// happen before the first write, so a bad item anywhere in the list leaves
// no rows behind.
func (s *OrderService) CreateOrder(ctx context.Context, in *CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", utils.ErrValidation)
	}
	if strings.TrimSpace(in.CustomerName) == "" ||
		strings.TrimSpace(in.CustomerPhone) == "" ||
		strings.TrimSpace(in.ShippingAddress) == "" {
		return nil, fmt.Errorf("%w: customer name, phone, and shipping address are required", utils.ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = models.OrderStatusPending
	} else if !models.IsValidOrderStatus(status) {
		return nil, utils.ErrInvalidStatus
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusUnpaid
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	var total float64
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", utils.ErrValidation)
		}
		p, err := s.catalog.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %d not found", utils.ErrValidation, it.ProductID)
			}
			return nil, err
		}

		price := p.Price
		if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
			price = *p.DiscountPrice
		}
		lineTotal := price * float64(it.Quantity)
		total += lineTotal

		productID := p.ID
		items = append(items, models.OrderItem{
			ProductID:   &productID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Price:       price,
			Quantity:    it.Quantity,
			Total:       lineTotal,
		})
	}

	order := &models.Order{
		CustomerID:      in.CustomerID,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerEmail:   in.CustomerEmail,
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		TotalAmount:     total,
		Status:          status,
		PaymentStatus:   paymentStatus,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
	}

	if err := s.orders.Create(ctx, order, items); err != nil {
		log.Error().Err(err).Msg("Failed to store order")
		return nil, err
	}
	order.Items = items

	s.invalidateSummary(ctx)

	log.Info().
		Int("order_id", order.ID).
		Float64("total", order.TotalAmount).
		Int("items", len(items)).
		Msg("Order created")
	return order, nil
}

// UpdateStatus transitions an order to a new status and records who made the
// change. changedBy defaults to "Admin" when empty.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status, changedBy string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, utils.ErrInvalidStatus
	}
	if changedBy == "" {
		changedBy = "Admin"
	}

	order, err := s.orders.UpdateStatus(ctx, id, status, changedBy)
	if err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx)

	log.Info().
		Int("order_id", id).
		Str("status", status).
		Str("changed_by", changedBy).
		Msg("Order status updated")
	return order, nil
}

func (s *OrderService) invalidateSummary(ctx context.Context) {
	if s.summary == nil {
		return
	}
	if err := s.summary.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate dashboard summary cache")
	}
}
