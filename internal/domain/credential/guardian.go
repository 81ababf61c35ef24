package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ma6uchi/freee-api-export/internal/repository"
)

const defaultExpiryMargin = 5 * time.Minute

// RequestFunc issues one HTTP request using the given access token. It must
// be safe to call a second time after a refresh.
type RequestFunc func(ctx context.Context, accessToken string) (*http.Response, error)

// Guardian owns the credential for the duration of a run. It loads the
// stored credential on first use, refreshes it when expired or rejected,
// and persists every rotation before handing the credential out. All
// credential mutation goes through EnsureValid and CallWithAuth; nothing
// else touches the token.
type Guardian struct {
	store     Store
	refresher Refresher
	scope     string
	margin    time.Duration
	now       func() time.Time
	logger    *slog.Logger

	cred   Credential
	loaded bool
}

// NewGuardian creates a guardian for the credential stored under scope.
func NewGuardian(store Store, refresher Refresher, scope string, logger *slog.Logger, opts ...Option) *Guardian {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Guardian{
		store:     store,
		refresher: refresher,
		scope:     scope,
		margin:    defaultExpiryMargin,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// EnsureValid returns a credential that is valid right now, refreshing and
// persisting a new one if needed.
func (g *Guardian) EnsureValid(ctx context.Context) (Credential, error) {
	if !g.loaded {
		cred, err := g.store.Get(ctx, g.scope)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return Credential{}, fmt.Errorf("loading credential: %w", err)
		}
		if err == nil {
			g.cred = cred
		}
		g.loaded = true
	}

	if g.cred.Valid(g.now()) {
		return g.cred, nil
	}
	return g.refresh(ctx)
}

// CallWithAuth runs fn with a valid access token. If the response is a 401
// despite a seemingly valid credential, it refreshes once and re-runs fn
// exactly once; a second 401 is fatal.
func (g *Guardian) CallWithAuth(ctx context.Context, fn RequestFunc) (*http.Response, error) {
	cred, err := g.EnsureValid(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := fn(ctx, cred.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	g.logger.Warn("request unauthorized, refreshing credential and retrying once", "scope", g.scope)
	cred, err = g.refresh(ctx)
	if err != nil {
		return nil, err
	}

	resp, err = fn(ctx, cred.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, ErrRetryExhausted
	}
	return resp, nil
}

func (g *Guardian) refresh(ctx context.Context) (Credential, error) {
	if strings.TrimSpace(g.cred.RefreshToken) == "" {
		return Credential{}, ErrNoRefreshToken
	}

	fresh, err := g.refresher.Refresh(ctx, g.cred.RefreshToken)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	fresh.ExpiresAt = fresh.ExpiresAt.Add(-g.margin)

	// The refresh token rotated above; if this Put fails the old token is
	// already dead and future runs cannot refresh at all.
	if err := g.store.Put(ctx, g.scope, fresh); err != nil {
		g.logger.Error("rotated credential could not be persisted; manual re-authorization will be required",
			"scope", g.scope, "error", err)
		return Credential{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	g.cred = fresh
	g.logger.Info("credential refreshed", "scope", g.scope, "expires_at", fresh.ExpiresAt)
	return fresh, nil
}
