package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ma6uchi/freee-api-export/internal/domain/credential"
	"github.com/ma6uchi/freee-api-export/internal/repository"
)

// CredentialStore implements repository.CredentialStore for SQLite
type CredentialStore struct {
	db *DB
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(db *DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Get retrieves the credential stored under scope
func (s *CredentialStore) Get(ctx context.Context, scope string) (credential.Credential, error) {
	query := `
		SELECT access_token, refresh_token, expires_at
		FROM credentials
		WHERE scope = ?
	`

	var cred credential.Credential
	err := s.db.QueryRowContext(ctx, query, scope).Scan(
		&cred.AccessToken,
		&cred.RefreshToken,
		&cred.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return credential.Credential{}, repository.ErrNotFound
	}
	if err != nil {
		return credential.Credential{}, fmt.Errorf("failed to get credential: %w", err)
	}

	return cred, nil
}

// Put upserts the credential for scope. The previous refresh token is
// overwritten; it is already invalid once a rotation has happened.
func (s *CredentialStore) Put(ctx context.Context, scope string, cred credential.Credential) error {
	query := `
		INSERT INTO credentials (scope, access_token, refresh_token, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(scope) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		scope,
		cred.AccessToken,
		cred.RefreshToken,
		cred.ExpiresAt,
		time.Now().UTC(),
	)

	if err != nil {
		return fmt.Errorf("failed to put credential: %w", err)
	}

	return nil
}
