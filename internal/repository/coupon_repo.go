package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/utils"
)

const couponColumns = `id, code, discount_type, discount_value, min_order,
	max_discount, expires_at, usage_limit, used_count, active, created_at, updated_at`

// CouponRepository provides data access for coupons. Coupons live on the
// promotions database, not the core one.
type CouponRepository struct {
	db *sqlx.DB
}

// NewCouponRepository creates a new CouponRepository.
func NewCouponRepository(db *sqlx.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// List retrieves all coupons, newest first.
func (r *CouponRepository) List(ctx context.Context) ([]models.Coupon, error) {
	const q = `SELECT ` + couponColumns + ` FROM coupons ORDER BY created_at DESC`
	var out []models.Coupon
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a coupon. The code is normalized to trimmed upper case; a
// duplicate code is reported as utils.ErrDuplicateCode.
func (r *CouponRepository) Create(ctx context.Context, c *models.Coupon) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))

	const q = `
		INSERT INTO coupons (code, discount_type, discount_value, min_order,
			max_discount, expires_at, usage_limit, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, used_count, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, q,
		c.Code, c.DiscountType, c.DiscountValue, c.MinOrder,
		c.MaxDiscount, c.ExpiresAt, c.UsageLimit, c.Active,
	).Scan(&c.ID, &c.UsedCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return translateUniqueViolation(err, utils.ErrDuplicateCode)
	}
	return nil
}

// Update replaces a coupon row. The code is normalized the same way as on
// create. Returns utils.ErrNotFound when the coupon does not exist.
func (r *CouponRepository) Update(ctx context.Context, c *models.Coupon) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))

	const q = `
		UPDATE coupons SET
			code = $1, discount_type = $2, discount_value = $3, min_order = $4,
			max_discount = $5, expires_at = $6, usage_limit = $7, active = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING used_count, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, q,
		c.Code, c.DiscountType, c.DiscountValue, c.MinOrder,
		c.MaxDiscount, c.ExpiresAt, c.UsageLimit, c.Active,
		c.ID,
	).Scan(&c.UsedCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrNotFound
		}
		return translateUniqueViolation(err, utils.ErrDuplicateCode)
	}
	return nil
}

// Delete removes a coupon.
func (r *CouponRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// DeactivateExpired flips active to false on coupons past their expiry.
// Returns the number of coupons deactivated.
func (r *CouponRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	const q = `
		UPDATE coupons SET active = false, updated_at = NOW()
		WHERE active = true AND expires_at IS NOT NULL AND expires_at < NOW()`
	res, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
