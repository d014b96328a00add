// Package identity carries the authenticated user id through the request
// context.
package identity

import "context"

type contextKey string

const userIDKey contextKey = "userId"

// WithUserID injects the user id into the context.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID retrieves the user id from the context.
// The second return is false when no user is attached.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
