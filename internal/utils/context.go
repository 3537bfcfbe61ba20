// Package utils holds small helpers shared by the client and the server:
// typed context keys, JSON response writing, the resty client wrapper,
// JWT handling and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so string keys set by
// other packages never collide with ours.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey carries the authenticated owner id of a request.
var UserIDCtxKey = contextKey("userID")

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext returns the owner id stored by [WithUserID]. ok is
// false when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
