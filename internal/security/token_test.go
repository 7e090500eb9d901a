package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/security"
)

const testSecret = "test-secret-0123456789abcdef0123456789abcdef"

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	mgr := security.NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)

	token, err := mgr.GenerateAccessToken(42, "ada@example.com", domain.UserRoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, domain.UserRoleStudent, claims.Role)
	assert.Equal(t, security.TokenTypeAccess, claims.Type)
}

func TestTokenManager_RefreshTokenRoundTrip(t *testing.T) {
	mgr := security.NewTokenManager(testSecret, time.Hour, 7*24*time.Hour)

	token, err := mgr.GenerateRefreshToken(42, "ada@example.com")
	require.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	assert.Empty(t, claims.Role)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	mgr := security.NewTokenManager(testSecret, -time.Minute, -time.Minute)

	token, err := mgr.GenerateAccessToken(42, "ada@example.com", domain.UserRoleDonor)
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	mgr := security.NewTokenManager(testSecret, time.Hour, time.Hour)
	other := security.NewTokenManager("another-secret-another-secret-another", time.Hour, time.Hour)

	token, err := mgr.GenerateAccessToken(42, "ada@example.com", domain.UserRoleAdmin)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	mgr := security.NewTokenManager(testSecret, time.Hour, time.Hour)

	_, err := mgr.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
