package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/diagnosis/car-rental/internal/domain"
	"github.com/diagnosis/car-rental/internal/http/response"
	"github.com/diagnosis/car-rental/pkg/auth"
	"github.com/diagnosis/car-rental/pkg/logger"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// RequireRole admits requests carrying a valid bearer token whose role is one
// of roles. Every rejection is a 401.
func RequireRole(secret string, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(authz, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			claims, err := auth.Parse(strings.TrimSpace(raw), secret)
			if err != nil {
				logger.DebugContext(r.Context(), "Rejected bearer token", "error", err)
				response.Unauthorized(w, "Invalid token")
				return
			}

			if !hasRole(claims.Role, roles) {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), CtxClaims, claims)
			ctx = logger.WithCustomerID(ctx, claims.CustomerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func hasRole(role string, allowed []domain.Role) bool {
	for _, a := range allowed {
		if string(a) == role {
			return true
		}
	}
	return false
}

func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(CtxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}
