package credential

import "errors"

var (
	// ErrNoRefreshToken indicates no refresh token is available, so a
	// refresh cannot even be attempted. Configuration problem, not a
	// network one.
	ErrNoRefreshToken = errors.New("no refresh token available")
	// ErrRefreshFailed indicates the token endpoint rejected the refresh
	// or could not be reached.
	ErrRefreshFailed = errors.New("credential refresh failed")
	// ErrPersistFailed indicates a rotated credential could not be saved.
	// The old refresh token is already invalid at that point, so future
	// runs cannot recover without manual re-authorization.
	ErrPersistFailed = errors.New("persisting rotated credential failed")
	// ErrRetryExhausted indicates a request was still unauthorized after
	// one refresh-and-retry cycle.
	ErrRetryExhausted = errors.New("request unauthorized after credential refresh")
)
