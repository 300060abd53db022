package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/loomline/admin-api/internal/models"
)

// DashboardRepository computes the dashboard aggregates with live queries.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Summary runs the five aggregate queries sequentially. Each is an
// independent round trip, so the numbers are not a consistent snapshot.
func (r *DashboardRepository) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	var s models.DashboardSummary

	if err := r.db.GetContext(ctx, &s.TotalOrders,
		`SELECT COUNT(*) FROM orders`); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &s.PendingOrders,
		`SELECT COUNT(*) FROM orders WHERE status = $1`, models.OrderStatusPending); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &s.CompletedOrders,
		`SELECT COUNT(*) FROM orders WHERE status = $1`, models.OrderStatusDelivered); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &s.TotalSalesAmount,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE payment_status = 'Paid'`); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &s.TotalProducts,
		`SELECT COUNT(*) FROM products`); err != nil {
		return nil, err
	}
	return &s, nil
}
