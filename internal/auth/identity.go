package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the resolved caller for one request.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

type contextKey int

const identityKey contextKey = 0

// WithIdentity stores the identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the identity resolved by the middleware. The second
// return is false for anonymous requests.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
