package freee

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ma6uchi/freee-api-export/internal/domain/credential"
)

// DefaultTokenURL is freee's public token endpoint.
const DefaultTokenURL = "https://accounts.secure.freee.co.jp/public_api/token"

// TokenSource exchanges refresh tokens against the freee token endpoint. It
// implements credential.Refresher.
type TokenSource struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	Now          func() time.Time
}

// NewTokenSource builds a token source with defaults filled in.
func NewTokenSource(tokenURL, clientID, clientSecret string, httpClient *http.Client) *TokenSource {
	if strings.TrimSpace(tokenURL) == "" {
		tokenURL = DefaultTokenURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenSource{
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient:   httpClient,
		Now:          time.Now,
	}
}

// Refresh performs a grant_type=refresh_token exchange. The returned
// ExpiresAt is the provider expiry; the guardian subtracts its own margin.
func (t *TokenSource) Refresh(ctx context.Context, refreshToken string) (credential.Credential, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", t.ClientID)
	form.Set("client_secret", t.ClientSecret)
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return credential.Credential{}, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return credential.Credential{}, fmt.Errorf("calling token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return credential.Credential{}, fmt.Errorf("%w: token endpoint returned %d: %s",
			ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return credential.Credential{}, fmt.Errorf("decoding token response: %w", err)
	}
	if tr.AccessToken == "" || tr.RefreshToken == "" {
		return credential.Credential{}, fmt.Errorf("token response missing tokens")
	}

	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	return credential.Credential{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}
