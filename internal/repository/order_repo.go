package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/utils"
)

const orderColumns = `id, customer_id, customer_name, customer_phone, customer_email,
	shipping_address, total_amount, status, payment_status, payment_method,
	notes, created_at, updated_at`

// OrderRepository provides data access for orders, their line items, and the
// status history audit trail. The multi-statement intake and transition paths
// run inside explicit transactions with rollback on error.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// List retrieves all order headers, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	var out []models.Order
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPaginated returns one page of order headers plus the total count. An
// empty status applies no filter; a non-empty status is an equality filter
// applied identically to both the count and the data query.
func (r *OrderRepository) ListPaginated(ctx context.Context, page, limit int, status string) ([]models.Order, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders`+where, args...); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	q := `SELECT ` + orderColumns + ` FROM orders` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	var out []models.Order
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetDetail returns an order with its line items and status history. Line
// items fall back to the captured product-name snapshot when the referenced
// product has been deleted.
func (r *OrderRepository) GetDetail(ctx context.Context, id int) (*models.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o models.Order
	if err := r.db.GetContext(ctx, &o, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	items, err := selectOrderItems(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	o.Items = items

	const historyQ = `
		SELECT id, order_id, status, changed_by, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at DESC`
	if err := r.db.SelectContext(ctx, &o.StatusHistory, historyQ, id); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create durably records a validated order submission in one transaction:
// customer resolution (adopt by email or create a guest customer), the order
// header, line items, and the customer aggregate increments. On any error
// the transaction rolls back and no rows survive.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order, items []models.OrderItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Resolve the owning customer. An explicit reference wins; otherwise an
	// email match adopts the existing customer, and a miss promotes the guest
	// contact fields to a new customer row. Without a reference or an email
	// the order is stored with a null customer.
	if o.CustomerID == nil && o.CustomerEmail != nil && *o.CustomerEmail != "" {
		id, err := getCustomerIDByEmailTx(ctx, tx, *o.CustomerEmail)
		switch {
		case err == nil:
			o.CustomerID = &id
		case errors.Is(err, utils.ErrNotFound):
			id, err = createGuestCustomerTx(ctx, tx, o.CustomerName, *o.CustomerEmail, o.CustomerPhone, o.ShippingAddress)
			if err != nil {
				return err
			}
			o.CustomerID = &id
		default:
			return err
		}
	}

	const headerQ = `
		INSERT INTO orders (
			customer_id, customer_name, customer_phone, customer_email,
			shipping_address, total_amount, status, payment_status, payment_method, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRowxContext(ctx, headerQ,
		o.CustomerID, o.CustomerName, o.CustomerPhone, o.CustomerEmail,
		o.ShippingAddress, o.TotalAmount, o.Status, o.PaymentStatus, o.PaymentMethod, o.Notes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}

	const itemQ = `
		INSERT INTO order_items (order_id, product_id, product_name, sku, price, quantity, total)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`
	for i := range items {
		items[i].OrderID = o.ID
		if err := tx.QueryRowxContext(ctx, itemQ,
			o.ID, items[i].ProductID, items[i].ProductName, items[i].SKU,
			items[i].Price, items[i].Quantity, items[i].Total,
		).Scan(&items[i].ID); err != nil {
			return err
		}
	}

	if o.CustomerID != nil {
		if err := applyOrderStatsTx(ctx, tx, *o.CustomerID, o.TotalAmount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpdateStatus atomically updates an order's status and appends a history
// entry. Returns utils.ErrNotFound when the order does not exist; in that
// case no history row is written.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, status, changedBy string) (*models.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + orderColumns
	var o models.Order
	if err := tx.GetContext(ctx, &o, q, status, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	const historyQ = `
		INSERT INTO order_status_history (order_id, status, changed_by)
		VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, historyQ, id, status, changedBy); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &o, nil
}

// selectOrderItems loads line items for one order, preferring the live
// product name and joining its current image when the product still exists.
func selectOrderItems(ctx context.Context, db *sqlx.DB, orderID int) ([]models.OrderItem, error) {
	const q = `
		SELECT
			oi.id,
			oi.order_id,
			oi.product_id,
			COALESCE(p.name, oi.product_name) AS product_name,
			oi.sku,
			oi.price,
			oi.quantity,
			oi.total,
			p.image_url
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	var items []models.OrderItem
	if err := db.SelectContext(ctx, &items, q, orderID); err != nil {
		return nil, err
	}
	return items, nil
}
