package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
)

// Identity is the authenticated caller as resolved from a verified token and
// the current worker record. It is added to the request context by the
// middleware after successful verification.
type Identity struct {
	WorkerID uuid.UUID
	OrgID    uuid.UUID
	Role     models.Role
	Status   models.Status
}

type contextKey int

const identityContextKey contextKey = iota

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the authenticated identity from the request
// context. The second return is false for unauthenticated requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}
