// Package utils provides general-purpose helpers shared by the server and
// the client: type-safe context keys, JWT issuing and parsing, password
// hashing, JSON response writing, the HTTP client wrapper and trace id
// generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-family-finance/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key under which the auth middleware stores the
// resolved [models.UserContext] of the caller.
var UserCtxKey = contextKey("user")

// WithUserContext returns a copy of ctx carrying user.
func WithUserContext(ctx context.Context, user models.UserContext) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserContext retrieves the caller's identity from the context.
//
// ok is false when the value is missing or has an unexpected type.
func GetUserContext(ctx context.Context) (models.UserContext, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.UserContext)
	return user, ok
}

// GetUserIDFromContext is a shortcut returning only the caller's id.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	user, ok := GetUserContext(ctx)
	return user.ID, ok
}
