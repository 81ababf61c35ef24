package credential

import "time"

// Credential is the freee OAuth token pair. The refresh token rotates on
// every refresh, so the persisted copy must always be the newest one.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Valid reports whether the access token can still be used at the given time.
// ExpiresAt is recorded with a safety margin already subtracted.
func (c Credential) Valid(now time.Time) bool {
	return c.AccessToken != "" && now.Before(c.ExpiresAt)
}
