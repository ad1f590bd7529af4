// Package utils provides general-purpose helper utilities
// used across different parts of the application: typed context keys,
// JWT generation and validation, JSON response writing, the resty based
// HTTP client and trace id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/escrow-api/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the auth middleware stores the
// caller's [models.Identity].
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, id)
}

// GetIdentityFromContext retrieves the caller stored by [WithIdentity].
// ok is false when the request was not authenticated.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return id, ok
}

// GetUserIDFromContext returns the id of the authenticated caller.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := GetIdentityFromContext(ctx)
	if !ok {
		return 0, false
	}
	return id.ID, true
}
