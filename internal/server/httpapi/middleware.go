package httpapi

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

func claimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}

// bearer rejects requests without a valid, non-revoked access token and
// stores its claims in the request context.
func (h *Handler) bearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerScheme+" ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := h.users.Authenticate(r.Context(), strings.TrimSpace(token))
		if err != nil {
			status := statusFor(err)
			if status == http.StatusUnauthorized {
				writeError(w, status, err.Error())
				return
			}
			h.logger.Error(r.Context(), "authenticate", "error", err)
			writeError(w, status, "internal error")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// requireRole lets through only callers whose role is one of roles.
// It must run after bearer.
func requireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := claimsFrom(r.Context())
			if c == nil || !slices.Contains(roles, c.Role) {
				writeError(w, http.StatusForbidden, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
