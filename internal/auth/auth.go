// Package auth is the client for the hosted authentication service. The
// application never verifies or decodes credentials locally: a caller's token
// is forwarded as-is and the service's answer is the only identity the rest of
// the code trusts.
package auth

import "context"

// Identity is an authentication record owned by the auth service. It exists
// independently of any profile row; an identity whose profile write failed is
// orphaned until the profile is repaired.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Metadata is free-form out-of-band data attached to an identity at creation.
// It is not authoritative for access control; the profile row is.
type Metadata map[string]interface{}

type Service interface {
	// GetCallerIdentity resolves the identity behind a caller-presented bearer
	// token. Returns apperror.ErrNotAuthenticated when the token is missing,
	// expired or otherwise rejected.
	GetCallerIdentity(ctx context.Context, token string) (*Identity, error)

	// CreateIdentity creates a new identity with elevated privilege. Not
	// idempotent: a second call with the same email fails on the service's
	// uniqueness constraint.
	CreateIdentity(ctx context.Context, email, password string, metadata Metadata) (*Identity, error)

	// ListIdentities returns all identities, for admin reconciliation views.
	ListIdentities(ctx context.Context) ([]Identity, error)
}
