package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/security"
	"coursefund-backend/internal/service"
)

func newAuthFixture() (*MockUserRepo, service.AuthService) {
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret-0123456789abcdef0123456789abcdef", time.Hour, 7*24*time.Hour)
	return userRepo, service.NewAuthService(userRepo, tokens)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("StudentSuccess", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 1
			}).Return(nil)

		user, access, refresh, err := svc.Signup(ctx, "Ada", "ada@example.com", "", "password123", domain.UserRoleStudent)
		require.NoError(t, err)
		assert.Equal(t, domain.UserRoleStudent, user.Role)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		// Password is stored hashed, never verbatim.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	})

	t.Run("AdminSignupRejected", func(t *testing.T) {
		userRepo, svc := newAuthFixture()

		_, _, _, err := svc.Signup(ctx, "Eve", "eve@example.com", "", "password123", domain.UserRoleAdmin)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "role")
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		_, svc := newAuthFixture()

		_, _, _, err := svc.Signup(ctx, "Ada", "ada@example.com", "", "short", domain.UserRoleDonor)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "password")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &domain.User{ID: 1, Email: "ada@example.com", PasswordHash: string(hash), Role: domain.UserRoleStudent}

	t.Run("Success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)

		access, refresh, err := svc.Login(ctx, "ada@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)

		_, _, err := svc.Login(ctx, "ada@example.com", "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, assert.AnError)

		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 1, Email: "ada@example.com", Role: domain.UserRoleStudent}

	t.Run("Success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		tokens := security.NewTokenManager("test-secret-0123456789abcdef0123456789abcdef", time.Hour, 7*24*time.Hour)
		refresh, err := tokens.GenerateRefreshToken(1, "ada@example.com")
		require.NoError(t, err)
		userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)

		access, newRefresh, err := svc.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("AccessTokenNotAcceptedForRefresh", func(t *testing.T) {
		_, svc := newAuthFixture()
		tokens := security.NewTokenManager("test-secret-0123456789abcdef0123456789abcdef", time.Hour, 7*24*time.Hour)
		access, err := tokens.GenerateAccessToken(1, "ada@example.com", domain.UserRoleStudent)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})
}
