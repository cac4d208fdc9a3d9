package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserContext holds the authenticated caller's identity
type UserContext struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}
