package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-movements-api/internal/application/auth"
	"github.com/jhoicas/inventory-movements-api/internal/application/dto"
	"github.com/jhoicas/inventory-movements-api/internal/domain"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository/mocks"
	"github.com/jhoicas/inventory-movements-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func newAuth(repo *mocks.MockUserRepository) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 15, Issuer: "test"})
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthUseCase_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("rol por defecto seller y email normalizado", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetByEmail", ctx, "ana@example.com").Return(nil, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "ana@example.com" &&
				u.Role == entity.RoleSeller &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
		})).Return(nil)

		out, err := newAuth(repo).RegisterUser(ctx, dto.RegisterRequest{
			Email: "  Ana@Example.com ", Password: "password123", Name: "Ana",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleSeller, out.Role)
		assert.Equal(t, "active", out.Status)
		repo.AssertExpectations(t)
	})

	t.Run("email duplicado", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetByEmail", ctx, "ana@example.com").Return(&entity.User{ID: "u1"}, nil)

		_, err := newAuth(repo).RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "password123"})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("password corto o rol desconocido", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		uc := newAuth(repo)

		_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "corto"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "password123", Role: "root"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{
		ID:           "u1",
		Email:        "bodega@example.com",
		PasswordHash: hashed(t, "password123"),
		Role:         entity.RoleWarehouse,
		Status:       "active",
	}

	t.Run("credenciales válidas", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		out, err := newAuth(repo).Login(ctx, dto.LoginRequest{Email: user.Email, Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "u1", out.User.ID)

		userID, role, err := jwt.Parse(testSecret, out.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
		assert.Equal(t, entity.RoleWarehouse, role)
	})

	t.Run("password incorrecto", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		_, err := newAuth(repo).Login(ctx, dto.LoginRequest{Email: user.Email, Password: "otra-cosa"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetByEmail", ctx, "nadie@example.com").Return(nil, nil)

		_, err := newAuth(repo).Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("usuario inactivo", func(t *testing.T) {
		inactive := *user
		inactive.Status = "inactive"
		repo := new(mocks.MockUserRepository)
		repo.On("GetByEmail", ctx, user.Email).Return(&inactive, nil)

		_, err := newAuth(repo).Login(ctx, dto.LoginRequest{Email: user.Email, Password: "password123"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestAuthUseCase_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("crea el admin una sola vez", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetByEmail", ctx, "admin@example.com").Return(nil, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool { return u.Role == entity.RoleAdmin })).Return(nil).Once()
		repo.On("GetByEmail", ctx, "admin@example.com").Return(&entity.User{ID: "a1"}, nil).Once()
		uc := newAuth(repo)

		created, err := uc.EnsureAdmin(ctx, "admin@example.com", "password123")
		require.NoError(t, err)
		assert.True(t, created)

		created, err = uc.EnsureAdmin(ctx, "admin@example.com", "password123")
		require.NoError(t, err)
		assert.False(t, created)
		repo.AssertExpectations(t)
	})

	t.Run("email vacío no hace nada", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		created, err := newAuth(repo).EnsureAdmin(ctx, " ", "password123")
		require.NoError(t, err)
		assert.False(t, created)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}
