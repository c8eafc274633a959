package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

// RoleResolver looks up the storefront role of a signed-in user.
type RoleResolver interface {
	GetRole(ctx context.Context, userID string) (string, error)
}

type Middleware struct {
	verifier *Verifier
	roles    RoleResolver
	logger   logger.ZapLogger
}

func NewMiddleware(verifier *Verifier, roles RoleResolver, log logger.ZapLogger) *Middleware {
	return &Middleware{verifier: verifier, roles: roles, logger: log}
}

// Authenticate attaches the user to the context when a bearer token is
// present. Requests without a token continue as guests; a bad token is
// rejected.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerToken(r.Header.Get("Authorization"))
		if errors.Is(err, ErrMissingToken) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			httpx.WriteError(w, r, errx.Unauthorized("invalid authorization header"))
			return
		}

		user, err := m.verifier.Verify(raw)
		if err != nil {
			m.logger.Debug("rejected token", zap.Error(err))
			httpx.WriteError(w, r, errx.Unauthorized("invalid or expired token"))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			httpx.WriteError(w, r, errx.Unauthorized("sign in required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil {
			httpx.WriteError(w, r, errx.Unauthorized("sign in required"))
			return
		}

		role, err := m.roles.GetRole(r.Context(), user.UserID)
		if err != nil {
			m.logger.Error("failed to resolve role", zap.String("user_id", user.UserID), zap.Error(err))
			httpx.WriteError(w, r, err)
			return
		}
		if role != "admin" {
			httpx.WriteError(w, r, errx.Forbidden("admin access required"))
			return
		}

		withRole := *user
		withRole.Role = role
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &withRole)))
	})
}
