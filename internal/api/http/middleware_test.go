package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/security"
)

func newTestTokens() security.TokenManager {
	return security.NewTokenManager("test-secret-0123456789abcdef0123456789abcdef", time.Hour, 7*24*time.Hour)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTestTokens()
	mw := AuthMiddleware(tokens)

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromRequest(r)
		require.True(t, ok)
		respondJSON(w, http.StatusOK, principal)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(10, "ada@example.com", domain.UserRoleStudent)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/requests", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/requests", nil)
		rec := httptest.NewRecorder()

		mw(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/requests", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()

		mw(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken(10, "ada@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/requests", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rec := httptest.NewRecorder()

		mw(echo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	tokens := newTestTokens()
	mw := AuthMiddleware(tokens)

	handler := RequireRole(domain.UserRoleAdmin, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("MatchingRole", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(30, "admin@example.com", domain.UserRoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw(handler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("WrongRoleForbidden", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(10, "ada@example.com", domain.UserRoleStudent)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw(handler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRespondError(t *testing.T) {
	t.Run("ValidationBadRequest", func(t *testing.T) {
		verr := domain.NewValidationError()
		verr.Add("amount_cents", "must be a positive amount")
		rec := httptest.NewRecorder()

		respondError(rec, verr)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "amount_cents")
	})

	t.Run("OverfundingConflict", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondError(rec, &domain.OverfundingError{RequestID: 1, AttemptedCents: 60000, RemainingCents: 50000})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("StaleMutationNotFound", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondError(rec, domain.ErrNotFoundOrAlreadyProcessed)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("RoleMismatchForbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondError(rec, domain.ErrUnauthorized)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("UnknownErrorInternal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondError(rec, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
