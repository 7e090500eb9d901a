package http

import (
	"context"
	"net/http"
	"strings"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/security"
)

type contextKey string

const principalKey contextKey = "principal"

// AuthMiddleware validates the bearer token and stores the resulting
// principal in the request context. Handlers pass it on explicitly:
// services never reach back into the context for identity.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondError(w, security.ErrWrongTokenType)
				return
			}

			principal := domain.Principal{UserID: claims.UserID, Role: claims.Role}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects the request before any handler logic runs when
// the caller's role does not match.
func RequireRole(role domain.UserRole, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromRequest(r)
		if !ok {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		if principal.Role != role {
			respondError(w, domain.ErrUnauthorized)
			return
		}
		handler(w, r)
	}
}

func PrincipalFromRequest(r *http.Request) (domain.Principal, bool) {
	principal, ok := r.Context().Value(principalKey).(domain.Principal)
	return principal, ok
}
