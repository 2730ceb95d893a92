package ctxauth

import (
	"context"

	"assignment_service/internal/domain"
)

type userKey struct{}

var userKeyInstance = userKey{}

// WithUser attaches the authenticated account to the request context.
// Identity is always carried per-request; there is no process-wide state.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKeyInstance, user)
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKeyInstance).(*domain.User)
	return user, ok
}
