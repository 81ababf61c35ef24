package repository

import (
	"context"

	"github.com/ma6uchi/freee-api-export/internal/domain/credential"
)

// CredentialStore manages credential persistence
type CredentialStore interface {
	Get(ctx context.Context, scope string) (credential.Credential, error)
	Put(ctx context.Context, scope string, cred credential.Credential) error
}
