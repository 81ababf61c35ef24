package credential

import "context"

// Store persists credentials keyed by an opaque scope identifier.
type Store interface {
	Get(ctx context.Context, scope string) (Credential, error)
	Put(ctx context.Context, scope string, cred Credential) error
}

// Refresher exchanges a refresh token for a fresh credential. ExpiresAt on
// the returned credential is the provider's actual expiry; the guardian
// applies its own safety margin.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (Credential, error)
}
