package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/utils"
)

const customerColumns = `id, name, email, phone, address, status, notes,
	total_orders, total_spent, last_order_at, created_at, updated_at`

// CustomerRepository provides data access for customers.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List retrieves all customers, newest first.
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`
	var out []models.Customer
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPaginated returns one page of customers with a live order count
// aggregated from the orders table instead of the denormalized counter.
func (r *CustomerRepository) ListPaginated(ctx context.Context, page, limit int) ([]models.CustomerSummary, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM customers`); err != nil {
		return nil, 0, err
	}

	const q = `
		SELECT
			c.id, c.name, c.email, c.phone, c.address, c.status, c.last_order_at,
			COALESCE(order_counts.total_orders, 0) AS total_orders,
			c.total_spent,
			c.created_at
		FROM customers c
		LEFT JOIN (
			SELECT customer_id, COUNT(*) AS total_orders
			FROM orders
			GROUP BY customer_id
		) AS order_counts ON order_counts.customer_id = c.id
		ORDER BY c.created_at DESC
		LIMIT $1 OFFSET $2`

	offset := (page - 1) * limit
	var out []models.CustomerSummary
	if err := r.db.SelectContext(ctx, &out, q, limit, offset); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetDetail returns a customer with a live-recomputed order count and the 10
// most recent orders, each carrying its line items.
func (r *CustomerRepository) GetDetail(ctx context.Context, id int) (*models.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	var c models.Customer
	if err := r.db.GetContext(ctx, &c, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	// The stored counter can drift; the detail view trusts the orders table.
	if err := r.db.GetContext(ctx, &c.TotalOrders,
		`SELECT COUNT(*) FROM orders WHERE customer_id = $1`, id); err != nil {
		return nil, err
	}

	const ordersQ = `
		SELECT id, customer_id, customer_name, customer_phone, customer_email,
		       shipping_address, total_amount, status, payment_status, payment_method,
		       notes, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT 10`
	if err := r.db.SelectContext(ctx, &c.Orders, ordersQ, id); err != nil {
		return nil, err
	}

	for i := range c.Orders {
		items, err := selectOrderItems(ctx, r.db, c.Orders[i].ID)
		if err != nil {
			return nil, err
		}
		c.Orders[i].Items = items
	}
	return &c, nil
}

// Create inserts a new customer. Duplicate emails are reported as
// utils.ErrDuplicateEmail.
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	const q = `
		INSERT INTO customers (name, email, phone, address, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, total_orders, total_spent, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, q,
		c.Name, c.Email, c.Phone, c.Address, c.Status, c.Notes,
	).Scan(&c.ID, &c.TotalOrders, &c.TotalSpent, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return translateUniqueViolation(err, utils.ErrDuplicateEmail)
	}
	return nil
}

// Tx helpers for the order intake transaction.

// getCustomerIDByEmailTx looks up a customer id by email inside tx.
// Returns utils.ErrNotFound on a miss.
func getCustomerIDByEmailTx(ctx context.Context, tx *sqlx.Tx, email string) (int, error) {
	var id int
	if err := tx.GetContext(ctx, &id, `SELECT id FROM customers WHERE email = $1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, utils.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// createGuestCustomerTx promotes guest contact fields to a customer row.
func createGuestCustomerTx(ctx context.Context, tx *sqlx.Tx, name, email, phone, address string) (int, error) {
	const q = `
		INSERT INTO customers (name, email, phone, address, status)
		VALUES ($1, $2, $3, $4, 'Active')
		RETURNING id`
	var id int
	if err := tx.GetContext(ctx, &id, q, name, email, phone, address); err != nil {
		return 0, err
	}
	return id, nil
}

// applyOrderStatsTx bumps the denormalized customer aggregates for one order.
// Single statement, so concurrent intakes cannot lose updates.
func applyOrderStatsTx(ctx context.Context, tx *sqlx.Tx, customerID int, orderTotal float64) error {
	const q = `
		UPDATE customers SET
			last_order_at = NOW(),
			total_orders = total_orders + 1,
			total_spent = total_spent + $1,
			updated_at = NOW()
		WHERE id = $2`
	_, err := tx.ExecContext(ctx, q, orderTotal, customerID)
	return err
}
