package auth

import (
	"context"
)

type UserContext struct {
	UserID string
	Email  string
	Role   string
}

type ctxKey struct{}

func WithUser(ctx context.Context, u *UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// GetUser returns nil for anonymous (guest) requests.
func GetUser(ctx context.Context) *UserContext {
	if u, ok := ctx.Value(ctxKey{}).(*UserContext); ok {
		return u
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}
