// file: internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"fresherjobs/internal/contextutils"
	"fresherjobs/internal/models"
	"fresherjobs/internal/response"
	"fresherjobs/internal/services"
)

// AuthMiddleware authenticates requests with bearer tokens and enforces
// role requirements on protected routes.
type AuthMiddleware struct {
	tokens   *services.TokenManager
	response *response.Builder
	logger   *zap.Logger
}

// NewAuthMiddleware creates authentication middleware.
func NewAuthMiddleware(tokens *services.TokenManager, builder *response.Builder, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		response: builder,
		logger:   logger,
	}
}

// Authenticate verifies the Authorization header and injects the caller's
// identity into the request context.
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			am.response.WriteError(w, r, services.NewUnauthorizedError("missing authorization token"))
			return
		}

		claims, err := am.tokens.Verify(token)
		if err != nil {
			am.response.WriteError(w, r, err)
			return
		}

		ctx := contextutils.WithUserID(r.Context(), claims.UserID)
		ctx = contextutils.WithUserRole(ctx, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only callers holding one of the given roles.
// It must run inside Authenticate.
func (am *AuthMiddleware) RequireRole(roles ...models.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := contextutils.GetUserRole(r.Context())
			if role == "" {
				am.response.WriteError(w, r, services.NewUnauthorizedError("authentication required"))
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			am.response.WriteError(w, r, services.NewForbiddenError("insufficient permissions"))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
