package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/utils"
)

// AdminUserRepository provides data access for back-office user accounts.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByEmail returns the account for an email, or utils.ErrNotFound.
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	const q = `
		SELECT id, email, password_hash, full_name, role, created_at
		FROM users
		WHERE email = $1`
	var u models.AdminUser
	if err := r.db.GetContext(ctx, &u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new account. Duplicate emails are reported as
// utils.ErrDuplicateEmail.
func (r *AdminUserRepository) Create(ctx context.Context, u *models.AdminUser) error {
	const q = `
		INSERT INTO users (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, q, u.Email, u.PasswordHash, u.FullName, u.Role).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return translateUniqueViolation(err, utils.ErrDuplicateEmail)
	}
	return nil
}
