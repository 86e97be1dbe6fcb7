package session

import (
	"context"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

type contextKey struct{}

// WithSession returns a copy of ctx carrying sess
func WithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the request's session, or nil when none was attached
func FromContext(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(contextKey{}).(*domain.Session)
	return sess
}
