package freee

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSource_Refresh(t *testing.T) {
	var form map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = map[string]string{
			"grant_type":    r.PostFormValue("grant_type"),
			"client_id":     r.PostFormValue("client_id"),
			"client_secret": r.PostFormValue("client_secret"),
			"refresh_token": r.PostFormValue("refresh_token"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "new-access", "refresh_token": "new-refresh", "expires_in": 21600}`)
	}))
	defer ts.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := NewTokenSource(ts.URL, "client-id", "client-secret", nil)
	source.Now = func() time.Time { return now }

	cred, err := source.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)

	assert.Equal(t, "refresh_token", form["grant_type"])
	assert.Equal(t, "client-id", form["client_id"])
	assert.Equal(t, "client-secret", form["client_secret"])
	assert.Equal(t, "old-refresh", form["refresh_token"])

	assert.Equal(t, "new-access", cred.AccessToken)
	assert.Equal(t, "new-refresh", cred.RefreshToken)
	assert.True(t, cred.ExpiresAt.Equal(now.Add(6*time.Hour)))
}

func TestTokenSource_RefreshRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid_grant"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	source := NewTokenSource(ts.URL, "client-id", "client-secret", nil)
	_, err := source.Refresh(context.Background(), "stale-refresh")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestTokenSource_RefreshMissingTokens(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"expires_in": 21600}`)
	}))
	defer ts.Close()

	source := NewTokenSource(ts.URL, "client-id", "client-secret", nil)
	_, err := source.Refresh(context.Background(), "refresh")
	require.Error(t, err)
}

func TestNewTokenSource_Defaults(t *testing.T) {
	source := NewTokenSource("", "id", "secret", nil)
	assert.Equal(t, DefaultTokenURL, source.TokenURL)
	assert.NotNil(t, source.HTTPClient)
}
