// Package authctx carries the authenticated principal through request contexts.
package authctx

import "context"

type ctxKey struct{}

// Principal identifies the authenticated user of a request.
type Principal struct {
	UserID uint
	Email  string
	Role   string
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the principal stored in ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

// UserID returns the authenticated user id, or nil for anonymous requests.
func UserID(ctx context.Context) *uint {
	p, ok := FromContext(ctx)
	if !ok || p.UserID == 0 {
		return nil
	}
	id := p.UserID
	return &id
}
