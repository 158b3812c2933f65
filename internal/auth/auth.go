// Package auth resolves bearer tokens to authenticated identities and
// carries the resulting user through request contexts. The identity
// provider is an interface so tests and alternative backends can swap in
// their own implementation.
package auth

import (
	"context"

	"storefront/internal/model"
)

// Provider resolves an opaque bearer token to an authenticated user.
// A nil user with a nil error means the token is unknown.
type Provider interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type ctxKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// FromContext returns the authenticated user, or nil for anonymous requests.
func FromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(ctxKey{}).(*model.User)
	return user
}
