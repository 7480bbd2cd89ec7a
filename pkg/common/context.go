package common

import "context"

// ContextKey represents a context key type
type ContextKey string

// Context keys
const (
	ContextKeyUserID    ContextKey = "user_id"
	ContextKeyEncodedID ContextKey = "encoded_id"
)

// WithUserID adds user ID to context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ContextKeyUserID).(string)
	return userID, ok
}

// WithEncodedID adds the user's opaque public ID to context
func WithEncodedID(ctx context.Context, encodedID string) context.Context {
	return context.WithValue(ctx, ContextKeyEncodedID, encodedID)
}

// GetEncodedID extracts the user's opaque public ID from context
func GetEncodedID(ctx context.Context) (string, bool) {
	encodedID, ok := ctx.Value(ContextKeyEncodedID).(string)
	return encodedID, ok
}
