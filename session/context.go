package session

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// NewContext returns a derived context carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, if present.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// FromRequest returns the session attached to r by Manager.Middleware.
func FromRequest(r *http.Request) (*Session, bool) {
	return FromContext(r.Context())
}
