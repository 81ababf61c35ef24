package credential

import "time"

// Option configures a Guardian.
type Option func(*Guardian)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guardian) {
		g.now = now
	}
}

// WithExpiryMargin sets how long before the provider expiry the credential
// is treated as expired.
func WithExpiryMargin(margin time.Duration) Option {
	return func(g *Guardian) {
		g.margin = margin
	}
}
