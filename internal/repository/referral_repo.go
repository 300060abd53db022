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

// ReferralRepository provides data access for referral codes and their usage
// records. Referrals live on the core database because both tables join
// against customers.
type ReferralRepository struct {
	db *sqlx.DB
}

// NewReferralRepository creates a new ReferralRepository.
func NewReferralRepository(db *sqlx.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// ListCodes retrieves all referral codes with the owning customer's name.
func (r *ReferralRepository) ListCodes(ctx context.Context) ([]models.ReferralCode, error) {
	const q = `
		SELECT rc.id, rc.user_id, rc.code, rc.reward_amount, rc.created_at,
		       c.name AS user_name
		FROM referral_codes rc
		LEFT JOIN customers c ON rc.user_id = c.id
		ORDER BY rc.created_at DESC`
	var out []models.ReferralCode
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCodeByUser returns the referral code owned by a customer, or
// utils.ErrNotFound when none exists.
func (r *ReferralRepository) GetCodeByUser(ctx context.Context, userID int) (*models.ReferralCode, error) {
	const q = `
		SELECT id, user_id, code, reward_amount, created_at
		FROM referral_codes
		WHERE user_id = $1`
	var rc models.ReferralCode
	if err := r.db.GetContext(ctx, &rc, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &rc, nil
}

// CreateCode inserts a referral code, normalized to trimmed upper case.
// A duplicate code is reported as utils.ErrDuplicateCode.
func (r *ReferralRepository) CreateCode(ctx context.Context, rc *models.ReferralCode) error {
	rc.Code = strings.ToUpper(strings.TrimSpace(rc.Code))

	const q = `
		INSERT INTO referral_codes (user_id, code, reward_amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, q, rc.UserID, rc.Code, rc.RewardAmount).
		Scan(&rc.ID, &rc.CreatedAt)
	if err != nil {
		return translateUniqueViolation(err, utils.ErrDuplicateCode)
	}
	return nil
}

// UpdateCode replaces a referral code's code and reward amount.
func (r *ReferralRepository) UpdateCode(ctx context.Context, rc *models.ReferralCode) error {
	rc.Code = strings.ToUpper(strings.TrimSpace(rc.Code))

	const q = `
		UPDATE referral_codes SET code = $1, reward_amount = $2
		WHERE id = $3
		RETURNING user_id, created_at`
	err := r.db.QueryRowxContext(ctx, q, rc.Code, rc.RewardAmount, rc.ID).
		Scan(&rc.UserID, &rc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrNotFound
		}
		return translateUniqueViolation(err, utils.ErrDuplicateCode)
	}
	return nil
}

// DeleteCode removes a referral code.
func (r *ReferralRepository) DeleteCode(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM referral_codes WHERE id = $1`, id)
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

// ListUsage retrieves referral usage records with both party names joined.
func (r *ReferralRepository) ListUsage(ctx context.Context) ([]models.ReferralUsage, error) {
	const q = `
		SELECT ru.id, ru.referrer_user_id, ru.referred_user_id, ru.order_id,
		       ru.reward_applied, ru.created_at,
		       referrer.name AS referrer_name,
		       referred.name AS referred_name
		FROM referral_usage ru
		LEFT JOIN customers referrer ON ru.referrer_user_id = referrer.id
		LEFT JOIN customers referred ON ru.referred_user_id = referred.id
		ORDER BY ru.created_at DESC`
	var out []models.ReferralUsage
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRewardApplied flags a usage record as rewarded.
func (r *ReferralRepository) MarkRewardApplied(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE referral_usage SET reward_applied = true WHERE id = $1`, id)
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
