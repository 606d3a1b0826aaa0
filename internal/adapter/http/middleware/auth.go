package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/iho/escrowledger/internal/domain"
	"github.com/iho/escrowledger/internal/infrastructure/auth"
)

type contextKey string

const operatorContextKey contextKey = "operator"

// AuthMiddleware creates an authentication middleware
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized", "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized", "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), operatorContextKey, claims.Operator())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIssuer rejects mutating requests from operators that cannot issue envelopes.
// Requests without an authenticated operator pass through unchanged.
func RequireIssuer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op, ok := GetOperatorFromContext(r.Context())
		if ok && r.Method != http.MethodGet && r.Method != http.MethodHead && !op.Role.CanIssue() {
			writeJSONError(w, http.StatusForbidden, "Forbidden", domain.ErrInsufficientRole.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetOperatorFromContext extracts the authenticated operator from context
func GetOperatorFromContext(ctx context.Context) (*domain.Operator, bool) {
	op, ok := ctx.Value(operatorContextKey).(*domain.Operator)
	return op, ok
}
