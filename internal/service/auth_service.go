package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/utils"
)

// AdminUserStore is the slice of the admin user repository the auth flow needs.
type AdminUserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, u *models.AdminUser) error
}

// AuthService issues bearer tokens for back-office accounts.
type AuthService struct {
	userRepo AdminUserStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo AdminUserStore) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token string            `json:"token"`
	User  *models.AdminUser `json:"user"`
}

// Login verifies credentials and returns a signed token. An unknown email
// and a wrong password are indistinguishable to the caller; a known account
// with a non-issuable role is reported separately.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log.Debug().Str("email", email).Msg("Login attempt")

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.ErrInvalidCredentials
		}
		log.Error().Err(err).Str("email", email).Msg("Failed to get user by email")
		return nil, err
	}

	if !models.IssuableRoles[user.Role] {
		log.Warn().Str("email", email).Str("role", user.Role).Msg("Role not allowed to log in")
		return nil, utils.ErrRoleNotAllowed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Password verification failed")
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, user.FullName)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", email).Str("role", user.Role).Msg("Login successful")
	return &LoginResult{Token: token, User: user}, nil
}

// CreateAdmin registers a new back-office account with a bcrypt-hashed
// password. Used by the seeding CLI, not exposed over HTTP.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password, fullName, role string) error {
	if !models.IssuableRoles[role] {
		return utils.ErrRoleNotAllowed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     fullName,
		Role:         role,
	}
	return s.userRepo.Create(ctx, user)
}
