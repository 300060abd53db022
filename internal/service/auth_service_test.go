package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/utils"
)

type mockAdminUserStore struct {
	getByEmailFunc func(ctx context.Context, email string) (*models.AdminUser, error)
	createFunc     func(ctx context.Context, u *models.AdminUser) error
}

func (m *mockAdminUserStore) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockAdminUserStore) Create(ctx context.Context, u *models.AdminUser) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return nil
}

func storeWithUser(t *testing.T, password, role string) *mockAdminUserStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.AdminUser{
		ID:           1,
		Email:        "admin@loomline.in",
		PasswordHash: string(hash),
		FullName:     "Store Admin",
		Role:         role,
	}
	return &mockAdminUserStore{
		getByEmailFunc: func(ctx context.Context, email string) (*models.AdminUser, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, utils.ErrNotFound
		},
	}
}

func TestLogin(t *testing.T) {
	utils.InitJWT("test-secret")

	t.Run("success returns valid token and identity", func(t *testing.T) {
		svc := NewAuthService(storeWithUser(t, "s3cret", models.RoleSuperAdmin))

		result, err := svc.Login(context.Background(), "admin@loomline.in", "s3cret")
		require.NoError(t, err)
		require.NotNil(t, result)

		claims, err := utils.ValidateJWT(result.Token)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, "admin@loomline.in", claims.Email)
		assert.Equal(t, models.RoleSuperAdmin, claims.Role)
		assert.Equal(t, "Store Admin", claims.FullName)
		assert.Equal(t, models.RoleSuperAdmin, result.User.Role)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewAuthService(storeWithUser(t, "s3cret", models.RoleSuperAdmin))

		_, err := svc.Login(context.Background(), "nobody@loomline.in", "s3cret")
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewAuthService(storeWithUser(t, "s3cret", models.RoleAccountant))

		_, err := svc.Login(context.Background(), "admin@loomline.in", "wrong")
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})

	t.Run("non-issuable role is rejected before password check", func(t *testing.T) {
		svc := NewAuthService(storeWithUser(t, "s3cret", "viewer"))

		_, err := svc.Login(context.Background(), "admin@loomline.in", "s3cret")
		assert.ErrorIs(t, err, utils.ErrRoleNotAllowed)
	})

	t.Run("order_manager can log in", func(t *testing.T) {
		svc := NewAuthService(storeWithUser(t, "s3cret", models.RoleOrderManager))

		result, err := svc.Login(context.Background(), "admin@loomline.in", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})
}

func TestCreateAdmin(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		var created *models.AdminUser
		store := &mockAdminUserStore{
			createFunc: func(ctx context.Context, u *models.AdminUser) error {
				created = u
				return nil
			},
		}
		svc := NewAuthService(store)

		err := svc.CreateAdmin(context.Background(), "new@loomline.in", "pass123", "New Admin", models.RoleInventoryManager)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEqual(t, "pass123", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pass123")))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := NewAuthService(&mockAdminUserStore{})

		err := svc.CreateAdmin(context.Background(), "new@loomline.in", "pass123", "New Admin", "root")
		assert.ErrorIs(t, err, utils.ErrRoleNotAllowed)
	})
}
