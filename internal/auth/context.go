package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
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

// UserIDFromContext returns the acting user's id, or nil when the
// request was authenticated as a system caller.
func UserIDFromContext(ctx context.Context) *uuid.UUID {
	user, ok := FromContext(ctx)
	if !ok || user.UserID == uuid.Nil {
		return nil
	}
	id := user.UserID
	return &id
}
